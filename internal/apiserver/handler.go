package apiserver

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/wharfdock/wharfd/core/netproto"
	coretypes "github.com/wharfdock/wharfd/core/types"
	"github.com/wharfdock/wharfd/internal/types"
)

type createContainerRequest struct {
	Name          string `json:"name"`
	Image         string `json:"image"`
	RestartPolicy string `json:"restartPolicy,omitempty"`
	Persistent    bool   `json:"persistent,omitempty"`
}

func (s *Server) handleListContainers(c *fiber.Ctx) error {
	containers, err := s.service.List(c.Context())
	if err != nil {
		return s.sendError(c, err)
	}
	if containers == nil {
		containers = []*coretypes.Container{}
	}
	return c.JSON(containers)
}

func (s *Server) handleGetContainer(c *fiber.Ctx) error {
	container, err := s.service.FindByName(c.Context(), c.Params("name"))
	if err != nil {
		return s.sendError(c, err)
	}
	return c.JSON(container)
}

func (s *Server) handleCreateContainer(c *fiber.Ctx) error {
	var req createContainerRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	var annotations []coretypes.Annotation
	if req.RestartPolicy != "" {
		directive, ok := parseRestartDirective(req.RestartPolicy)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "unknown restart policy: " + req.RestartPolicy,
			})
		}
		annotations = append(annotations, coretypes.RestartPolicyAnnotation{Directive: directive})
	}
	if req.Persistent {
		annotations = append(annotations, coretypes.PersistentAnnotation{})
	}

	container, err := s.service.Create(c.Context(), req.Name, req.Image, annotations)
	if err != nil {
		return s.sendError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(container)
}

func (s *Server) handleApplyContainer(c *fiber.Ctx) error {
	var resource coretypes.Container
	if err := c.BodyParser(&resource); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	container, err := s.service.Apply(c.Context(), types.ContainerApplyOptions{
		Name: resource.Name,
		Spec: resource.Spec,
	})
	if err != nil {
		return s.sendError(c, err)
	}
	return c.JSON(container)
}

func (s *Server) handleUpdateContainerStatus(c *fiber.Ctx) error {
	// Start from the constructed default so an absent exitCode stays at the
	// unknown sentinel instead of collapsing to 0.
	status := coretypes.NewContainerStatus()
	if err := c.BodyParser(&status); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	container, err := s.service.UpdateStatus(c.Context(), types.ContainerStatusUpdateOptions{
		Name:   c.Params("name"),
		Status: status,
	})
	if err != nil {
		return s.sendError(c, err)
	}
	return c.JSON(container)
}

func (s *Server) handleDeleteContainer(c *fiber.Ctx) error {
	if err := s.service.Delete(c.Context(), c.Params("name")); err != nil {
		return s.sendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) handleContainerLogsAvailable(c *fiber.Ctx) error {
	container, err := s.service.FindByName(c.Context(), c.Params("name"))
	if err != nil {
		return s.sendError(c, err)
	}
	return c.JSON(fiber.Map{"logsAvailable": container.LogsAvailable()})
}

func (s *Server) sendError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, types.ErrContainerNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, coretypes.ErrInvalidResourceName), errors.Is(err, netproto.ErrInvalidArgument):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}

func parseRestartDirective(policy string) (coretypes.RestartPolicyDirective, bool) {
	switch policy {
	case "always":
		return coretypes.RestartDirectiveAlways, true
	case "no", "never":
		return coretypes.RestartDirectiveNever, true
	case "on-failure":
		return coretypes.RestartDirectiveOnFailure, true
	case "unless-stopped":
		return coretypes.RestartDirectiveUnlessStopped, true
	default:
		return 0, false
	}
}
