package ports

import "go.trai.ch/targets/internal/core/domain"

// DescriptorStore records resolved descriptors for the build executor.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type DescriptorStore interface {
	// Get retrieves the descriptor recorded under an output name.
	// Returns nil, nil if not found.
	Get(outputName string) (*domain.TargetDescriptor, error)

	// Put records the descriptors, replacing entries with the same output name.
	Put(descriptors ...domain.TargetDescriptor) error
}
