package server

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Gaurav-Gosain/folio/internal/app"
	"github.com/Gaurav-Gosain/folio/internal/content"
	"github.com/Gaurav-Gosain/folio/internal/desktop"
	"github.com/Gaurav-Gosain/folio/internal/tape"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"
)

// MCPConfig selects how the tool server is reached.
type MCPConfig struct {
	Transport string // stdio or streamable-http
	Port      int
	Version   string
}

// MCPServer exposes the portfolio and a headless desktop as MCP tools.
type MCPServer struct {
	portfolio *content.Portfolio

	mu      sync.Mutex
	desktop *app.OS

	mcp *mcpserver.MCPServer
}

// NewMCPServer registers the tools against p. Windows opened through the
// tools live on a desktop that is never drawn.
func NewMCPServer(p *content.Portfolio, version string) *MCPServer {
	if p == nil {
		p = content.Default()
	}
	if version == "" {
		version = "dev"
	}
	s := &MCPServer{
		portfolio: p,
		desktop:   app.New(app.Options{Content: p, Session: "mcp"}),
	}
	s.mcp = mcpserver.NewMCPServer("folio", version,
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithInstructions("Read "+p.Owner.Name+"'s portfolio and drive a headless folio desktop."),
	)
	s.registerTools()
	return s
}

// Serve runs the configured transport until it fails or ctx is cancelled.
func (s *MCPServer) Serve(ctx context.Context, cfg MCPConfig) error {
	switch cfg.Transport {
	case "", "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		go func() {
			<-ctx.Done()
			_ = httpServer.Shutdown(context.Background())
		}()
		if err := httpServer.Start(fmt.Sprintf(":%d", cfg.Port)); err != nil && ctx.Err() == nil {
			return fmt.Errorf("mcp server error: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

func (s *MCPServer) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("list_sections",
			mcp.WithDescription("List the portfolio sections with their titles"),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		s.handleListSections,
	)

	s.mcp.AddTool(
		mcp.NewTool("get_section",
			mcp.WithDescription("Read one portfolio section: heading, summary and entries"),
			mcp.WithString("key", mcp.Description("Section key from list_sections (e.g. 'projects')"), mcp.Required()),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		s.handleGetSection,
	)

	s.mcp.AddTool(
		mcp.NewTool("search_portfolio",
			mcp.WithDescription("Fuzzy search section titles and entries"),
			mcp.WithString("query", mcp.Description("Search text"), mcp.Required()),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		s.handleSearch,
	)

	s.mcp.AddTool(
		mcp.NewTool("open_window",
			mcp.WithDescription("Open an app or section on the headless desktop and return the window list"),
			mcp.WithString("name", mcp.Description("App name (e.g. 'Mail', 'Projects') or section key"), mcp.Required()),
		),
		s.handleOpenWindow,
	)

	s.mcp.AddTool(
		mcp.NewTool("close_window",
			mcp.WithDescription("Close a window on the headless desktop and return the window list"),
			mcp.WithString("id", mcp.Description("Window id from open_window or list_windows"), mcp.Required()),
		),
		s.handleCloseWindow,
	)

	s.mcp.AddTool(
		mcp.NewTool("run_tape",
			mcp.WithDescription("Run a .tape script on the headless desktop and return the window list. Sleep lines are ignored"),
			mcp.WithString("script", mcp.Description("Tape commands, one per line (e.g. 'Open Projects\\nMove 4 2')"), mcp.Required()),
		),
		s.handleRunTape,
	)

	s.mcp.AddTool(
		mcp.NewTool("list_windows",
			mcp.WithDescription("Return the headless desktop's windows and focus"),
			mcp.WithReadOnlyHintAnnotation(true),
		),
		s.handleListWindows,
	)
}

func toText(v any) (*mcp.CallToolResult, error) {
	b, err := yaml.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

type sectionEntry struct {
	Key   string `yaml:"key"`
	Title string `yaml:"title"`
	Items int    `yaml:"items"`
}

func (s *MCPServer) handleListSections(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keys := make([]string, 0, len(s.portfolio.Sections))
	for k := range s.portfolio.Sections {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	entries := make([]sectionEntry, 0, len(keys))
	for _, k := range keys {
		sec := s.portfolio.Sections[k]
		entries = append(entries, sectionEntry{Key: k, Title: sec.Title, Items: len(sec.Items)})
	}
	return toText(entries)
}

func (s *MCPServer) handleGetSection(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key, err := request.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sec, ok := s.portfolio.Sections[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("no section %q", key)), nil
	}
	return toText(sec)
}

func (s *MCPServer) handleSearch(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	hits := s.portfolio.Search(query)
	if len(hits) == 0 {
		return mcp.NewToolResultText("no matches\n"), nil
	}
	return toText(hits)
}

func (s *MCPServer) handleOpenWindow(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.desktop.OpenNamed(name); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toText(s.desktop.Store.Snapshot())
}

func (s *MCPServer) handleCloseWindow(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.desktop.Store.Window(id); !ok {
		return mcp.NewToolResultError(fmt.Sprintf("no window %q", id)), nil
	}
	s.desktop.CloseWindow(id)
	return toText(s.desktop.Store.Snapshot())
}

func (s *MCPServer) handleListWindows(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return toText(s.desktop.Store.Snapshot())
}

type tapeResult struct {
	Errors   []string         `yaml:"errors,omitempty"`
	Snapshot desktop.Snapshot `yaml:"desktop"`
}

func (s *MCPServer) handleRunTape(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	script, err := request.RequireString("script")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	cmds, err := tape.ParseString(script)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var result tapeResult
	if err := s.desktop.RunTape(cmds); err != nil {
		result.Errors = strings.Split(err.Error(), "\n")
	}
	result.Snapshot = s.desktop.Store.Snapshot()
	return toText(result)
}
