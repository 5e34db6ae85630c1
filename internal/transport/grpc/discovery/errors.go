package discovery

import (
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/light-bringer/discovery-service/internal/app/discovery/domain"
)

// mapDomainErrorToGRPC converts domain errors to gRPC status codes.
func mapDomainErrorToGRPC(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, domain.ErrInvalidSearchTerm):
		return status.Error(codes.InvalidArgument, "search term is required")

	case errors.Is(err, domain.ErrCatalogUnavailable), errors.Is(err, domain.ErrCategoryTreeUnavailable):
		return status.Error(codes.Unavailable, err.Error())

	default:
		return status.Error(codes.Internal, "internal server error")
	}
}
