package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"tableflip.dev/diary/pkg/timeutil"
	"tableflip.dev/diary/pkg/viewmodel"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerCreateEntryTool(srv, svc)
	registerUpdateEntryTool(srv, svc)
	registerDeleteEntryTool(srv, svc)
	registerGetEntryTool(srv, svc)
	registerListEntriesTool(srv, svc)
	registerSearchEntriesTool(srv, svc)
	registerListDaysTool(srv, svc)
}

func registerCreateEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"create_entry",
		mcp.WithDescription("Write a new diary entry. The creation date is set by the store."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Entry title. Must not be blank."),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("Entry text. Must not be blank."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Title   string `json:"title"`
			Content string `json:"content"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}

		dto, err := svc.CreateEntry(ctx, args.Title, args.Content)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerUpdateEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"update_entry",
		mcp.WithDescription("Change the title and/or content of an entry."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier to update."),
		),
		mcp.WithString("title",
			mcp.Description("New title. Omit to keep the current one."),
		),
		mcp.WithString("content",
			mcp.Description("New content. Omit to keep the current one."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		title := request.GetString("title", "")
		content := request.GetString("content", "")
		if title == "" && content == "" {
			return mcp.NewToolResultError("title or content is required"), nil
		}

		dto, err := svc.UpdateEntry(ctx, id, title, content)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerDeleteEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_entry",
		mcp.WithDescription("Delete an entry permanently."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier to delete."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := svc.DeleteEntry(ctx, id); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{"id": id, "deleted": true})
	})
}

func registerGetEntryTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_entry",
		mcp.WithDescription("Fetch a single entry by id."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Entry identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.EntryByID(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerListEntriesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_entries",
		mcp.WithDescription("List entries, newest first by default."),
		mcp.WithString("sort",
			mcp.Description("desc (newest day first), asc (oldest day first) or title."),
			mcp.Enum("desc", "asc", "title"),
		),
		mcp.WithString("since",
			mcp.Description("Only entries written within this window, e.g. 3d or 1w2d."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sortBy, err := viewmodel.ParseSort(request.GetString("sort", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		opts := ListOptions{Sort: sortBy}
		if window := request.GetString("since", ""); window != "" {
			if opts.Since, err = timeutil.Since(time.Now(), window); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
		}
		entries, err := svc.ListEntries(ctx, opts)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"count":   len(entries),
			"entries": entries,
		})
	})
}

func registerSearchEntriesTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"search_entries",
		mcp.WithDescription("Find entries whose title or content contains the query. Matching is case-sensitive."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Substring to look for."),
		),
		mcp.WithString("sort",
			mcp.Description("desc, asc or title."),
			mcp.Enum("desc", "asc", "title"),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := request.RequireString("query")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if strings.TrimSpace(query) == "" {
			return mcp.NewToolResultError("query must not be blank"), nil
		}
		sortBy, err := viewmodel.ParseSort(request.GetString("sort", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		entries, err := svc.ListEntries(ctx, ListOptions{Query: query, Sort: sortBy})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"query":   query,
			"count":   len(entries),
			"entries": entries,
		})
	})
}

func registerListDaysTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_days",
		mcp.WithDescription("List entries grouped by the day they were written."),
		mcp.WithString("order",
			mcp.Description("desc (newest first) or asc."),
			mcp.Enum("desc", "asc"),
		),
		mcp.WithString("query",
			mcp.Description("Optional case-sensitive filter over title and content."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		order, err := viewmodel.ParseOrder(request.GetString("order", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		sortBy := viewmodel.SortNewest
		if order == viewmodel.OrderAscending {
			sortBy = viewmodel.SortOldest
		}
		days, err := svc.Days(ctx, ListOptions{Sort: sortBy, Query: request.GetString("query", "")})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"count": len(days),
			"days":  days,
		})
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
