package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/amishk599/wellplan/internal/prompt"
)

const (
	templatesURI = "wellplan://templates"
	plansURI     = "wellplan://plans/recent"
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         templatesURI,
		Name:        "Prompt Templates",
		Description: "The prompt templates a plan can be generated from",
		MIMEType:    "application/json",
	}, s.handleTemplatesResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         plansURI,
		Name:        "Recent Plans",
		Description: "The 20 most recently archived plans",
		MIMEType:    "application/json",
	}, s.handleRecentPlansResource)
}

type templateInfo struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Ayurveda bool   `json:"ayurveda"`
}

func (s *Server) handleTemplatesResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	var list []templateInfo
	for _, ayurveda := range []bool{false, true} {
		list = append(list, templateInfo{Name: prompt.Name(ayurveda), Title: prompt.Title(ayurveda), Ayurveda: ayurveda})
	}
	return jsonResource(templatesURI, list)
}

func (s *Server) handleRecentPlansResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	plans, err := s.store.List(ctx, 20)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	if plans == nil {
		return jsonResource(plansURI, []struct{}{})
	}
	return jsonResource(plansURI, plans)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
