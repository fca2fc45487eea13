package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerListProductsTool(srv, svc)
	registerGetProductTool(srv, svc)
	registerCreateProductTool(srv, svc)
	registerUpdateProductTool(srv, svc)
	registerDeleteProductTool(srv, svc)
}

func productArgs(extra ...mcp.ToolOption) []mcp.ToolOption {
	opts := []mcp.ToolOption{
		mcp.WithString("nome",
			mcp.Required(),
			mcp.Description("Product name."),
		),
		mcp.WithString("descricao",
			mcp.Description("Free text description."),
		),
		mcp.WithNumber("valor",
			mcp.Required(),
			mcp.Description("Price in reais, for example 19.9."),
		),
		mcp.WithBoolean("disponivel",
			mcp.Description("Whether the product is available. Defaults to true."),
		),
		mcp.WithString("imagem",
			mcp.Description("Optional local path of an image to upload."),
		),
	}
	return append(extra, opts...)
}

func bindProduct(request mcp.CallToolRequest) (ProductOptions, error) {
	var args struct {
		Nome       string   `json:"nome"`
		Descricao  string   `json:"descricao"`
		Valor      *float64 `json:"valor"`
		Disponivel *bool    `json:"disponivel"`
		Imagem     string   `json:"imagem"`
	}
	if err := request.BindArguments(&args); err != nil {
		return ProductOptions{}, fmt.Errorf("invalid arguments: %v", err)
	}
	if args.Valor == nil {
		return ProductOptions{}, fmt.Errorf("valor is required")
	}
	available := true
	if args.Disponivel != nil {
		available = *args.Disponivel
	}
	return ProductOptions{
		Name:        args.Nome,
		Description: args.Descricao,
		Price:       *args.Valor,
		Available:   available,
		ImagePath:   args.Imagem,
	}, nil
}

func registerListProductsTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"list_products",
		mcp.WithDescription("List every product in the catalog, cheapest first."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		products, err := svc.ListProducts(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(map[string]any{
			"products": products,
			"count":    len(products),
		})
	})
}

func registerGetProductTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"get_product",
		mcp.WithDescription("Fetch a single product by id."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Product identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		p, err := svc.GetProduct(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(p)
	})
}

func registerCreateProductTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"create_product",
		productArgs(mcp.WithDescription("Create a new product."))...,
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		opts, err := bindProduct(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		p, err := svc.CreateProduct(ctx, opts)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(p)
	})
}

func registerUpdateProductTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"update_product",
		productArgs(
			mcp.WithDescription("Replace the fields of an existing product."),
			mcp.WithString("id",
				mcp.Required(),
				mcp.Description("Product identifier."),
			),
		)...,
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		opts, err := bindProduct(request)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		p, err := svc.UpdateProduct(ctx, id, opts)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(p)
	})
}

func registerDeleteProductTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"delete_product",
		mcp.WithDescription("Delete a product by id."),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Product identifier."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := svc.DeleteProduct(ctx, id); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("deleted %s", id)), nil
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
