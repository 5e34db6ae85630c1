package e2e

import (
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/light-bringer/discovery-service/internal/app/discovery/domain"
	"github.com/light-bringer/discovery-service/internal/app/discovery/repo"
	"github.com/light-bringer/discovery-service/internal/config"
	"github.com/light-bringer/discovery-service/internal/pkg/cache"
	"github.com/light-bringer/discovery-service/internal/services"
	grpcdiscovery "github.com/light-bringer/discovery-service/internal/transport/grpc/discovery"
	"github.com/light-bringer/discovery-service/tests/testutil"
)

const bufSize = 1024 * 1024

// Services holds the wired application and its entry points for E2E tests.
type Services struct {
	Options *services.ServiceOptions
	GRPC    *grpcdiscovery.DiscoveryServiceClient
	Client  *spanner.Client
	Catalog *Catalog
}

// setupTest seeds the demo catalog and wires the full stack on top of
// Spanner, with the tree cached in memory and the catalog rate limited.
func setupTest(t *testing.T) (*Services, func()) {
	t.Helper()

	client, cleanupDB := testutil.SetupSpannerTest(t)
	catalog := seedCatalog(t, client)

	logger := zap.NewNop()
	categories := repo.NewCachedTreeProvider(
		repo.NewCategoryTreeRepo(client),
		cache.NewMemoryCache(testutil.NewMockClock()),
		time.Minute,
		logger,
	)
	opts := services.NewServiceOptionsWith(services.Collaborators{
		Categories: categories,
		Catalog:    repo.NewLimitedExecutor(repo.NewCatalogReadModel(client, logger), 1000, 1000),
	}, config.RateLimitConfig{PerClientRPS: 1000, PerClientBurst: 1000}, logger)

	lis := bufconn.Listen(bufSize)
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		grpcdiscovery.RecoveryInterceptor(),
		grpcdiscovery.LoggingInterceptor(logger),
	))
	grpcdiscovery.RegisterDiscoveryServiceServer(srv, opts.GRPCHandler)
	go func() { _ = srv.Serve(lis) }()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)

	cleanup := func() {
		conn.Close()
		srv.Stop()
		cleanupDB()
	}

	return &Services{
		Options: opts,
		GRPC:    grpcdiscovery.NewDiscoveryServiceClient(conn),
		Client:  client,
		Catalog: catalog,
	}, cleanup
}

// pageReply is the decoded gRPC page document.
type pageReply struct {
	Term     string                  `json:"term"`
	Query    *domain.DiscoveryQuery  `json:"query"`
	Category *domain.CategoryNode    `json:"category"`
	Result   *domain.DiscoveryResult `json:"result"`
	Range    domain.ItemRange        `json:"range"`
}

func decodeReply(t *testing.T, reply *structpb.Struct) pageReply {
	t.Helper()

	raw, err := json.Marshal(reply.AsMap())
	require.NoError(t, err)

	var page pageReply
	require.NoError(t, json.Unmarshal(raw, &page))
	return page
}

// ctx returns a context for testing.
func ctx() context.Context {
	return context.Background()
}
