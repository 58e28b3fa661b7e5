package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerHealthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getHealth",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Tags:        []string{"System"},
	}, s.handleGetHealth)
}

type HealthResponse struct {
	Status string    `json:"status" doc:"Service status"`
	Time   time.Time `json:"time" doc:"Server time"`
}

type HealthOutput struct {
	Body HealthResponse
}

func (s *Server) handleGetHealth(_ context.Context, _ *struct{}) (*HealthOutput, error) {
	return &HealthOutput{
		Body: HealthResponse{
			Status: "ok",
			Time:   time.Now().UTC(),
		},
	}, nil
}
