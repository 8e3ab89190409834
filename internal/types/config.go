package types

type Config struct {
	APIAddr          string
	StorageDirectory string
}
