package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerResources(srv *server.MCPServer, svc *Service) {
	registerProductsResource(srv, svc)
	registerProductTemplate(srv, svc)
	if svc.Drafts != nil {
		registerDraftResource(srv, svc)
	}
}

func registerProductsResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"catalog://products",
		"Products",
		mcp.WithResourceDescription("Every product in the catalog with formatted prices."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		products, err := svc.ListProducts(ctx)
		if err != nil {
			return nil, err
		}
		payload := map[string]any{
			"products": products,
			"count":    len(products),
		}
		return encodeResourceJSON(request.Params.URI, payload)
	})
}

func registerProductTemplate(srv *server.MCPServer, svc *Service) {
	template := mcp.NewResourceTemplate(
		"catalog://products/{id}",
		"Product Details",
		mcp.WithTemplateDescription("A single catalog product."),
		mcp.WithTemplateMIMEType("application/json"),
	)

	srv.AddResourceTemplate(template, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		id, _ := request.Params.Arguments["id"].(string)
		if id == "" {
			return nil, fmt.Errorf("product id is required")
		}
		p, err := svc.GetProduct(ctx, id)
		if err != nil {
			return nil, err
		}
		return encodeResourceJSON(request.Params.URI, map[string]any{"product": p})
	})
}

func registerDraftResource(srv *server.MCPServer, svc *Service) {
	resource := mcp.NewResource(
		"catalog://draft",
		"Form Draft",
		mcp.WithResourceDescription("The product form draft autosaved on this machine."),
		mcp.WithMIMEType("application/json"),
	)

	srv.AddResource(resource, func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		d, ok := svc.Draft()
		return encodeResourceJSON(request.Params.URI, map[string]any{
			"key":    svc.DraftKey,
			"exists": ok,
			"fields": d,
		})
	})
}

func encodeResourceJSON(uri string, payload any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
