package main

import (
	"context"
	"fmt"
	"log"
	"os"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/umputun/go-flags"
)

var opts struct {
	Endpoint string `short:"e" long:"endpoint" env:"MCP_ENDPOINT" default:"http://localhost:8080/mcp/stream" description:"MCP stream endpoint"`
	Keyword  string `short:"k" long:"keyword" description:"also run vacancy_search with this keyword"`
}

func main() {
	if _, err := flags.Parse(&opts); err != nil {
		os.Exit(2)
	}

	ctx := context.Background()

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "hh-vacancies-mcpcheck",
		Version: "0.1.0",
	}, nil)

	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{
		Endpoint: opts.Endpoint,
	}, nil)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer func() { _ = session.Close() }()

	log.Printf("Connected to server (session ID: %s)\n", session.ID())

	listTools(ctx, session)
	if opts.Keyword != "" {
		callTool(ctx, session, "vacancy_search", map[string]any{"keyword": opts.Keyword, "sort": true, "limit": 10})
	}
	callTool(ctx, session, "vacancy_list", map[string]any{})

	fmt.Println("\nAll checks completed")
}

func listTools(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nCHECK: tools/list")

	res, err := session.ListTools(ctx, nil)
	if err != nil {
		log.Fatalf("list tools failed: %v", err)
	}
	for _, tool := range res.Tools {
		fmt.Printf("  %s: %s\n", tool.Name, tool.Description)
	}
}

func callTool(ctx context.Context, session *mcp.ClientSession, name string, args map[string]any) {
	fmt.Printf("\nCHECK: %s\n", name)

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		log.Fatalf("%s failed: %v", name, err)
	}
	if result.IsError {
		printResult(result)
		log.Fatalf("%s returned an error", name)
	}

	printResult(result)
	fmt.Printf("%s passed\n", name)
}

func printResult(res *mcp.CallToolResult) {
	for _, c := range res.Content {
		if txt, ok := c.(*mcp.TextContent); ok {
			fmt.Println(txt.Text)
		}
	}
}
