// Command discoveryctl calls the discovery gRPC service from a terminal.
//
//	discoveryctl browse camping/tents color=green sort=price_asc
//	discoveryctl search tent pageSize=6
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/light-bringer/discovery-service/internal/transport/grpc/discovery"
)

func main() {
	addr := flag.String("addr", "localhost:9090", "discovery gRPC address")
	timeout := flag.Duration("timeout", 10*time.Second, "request timeout")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: discoveryctl [flags] browse <path> [key=value...]")
		fmt.Fprintln(os.Stderr, "       discoveryctl [flags] search <term> [key=value...]")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 2 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*addr, *timeout, flag.Arg(0), flag.Arg(1), flag.Args()[2:]); err != nil {
		log.Fatalf("discoveryctl: %v", err)
	}
}

func run(addr string, timeout time.Duration, command, subject string, args []string) error {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer conn.Close()

	client := discovery.NewDiscoveryServiceClient(conn)
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var reply *structpb.Struct
	switch command {
	case "browse":
		req, err := buildRequest(subject, args)
		if err != nil {
			return err
		}
		reply, err = client.BrowseCategory(ctx, req)
		if err != nil {
			return err
		}
	case "search":
		req, err := buildRequest("", append([]string{"q=" + subject}, args...))
		if err != nil {
			return err
		}
		reply, err = client.SearchProducts(ctx, req)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown command %q", command)
	}

	out, err := protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(reply)
	if err != nil {
		return fmt.Errorf("failed to encode reply: %w", err)
	}
	fmt.Println(string(out))
	return nil
}
