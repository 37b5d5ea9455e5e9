package server

import (
	"errors"
	"net/http"

	"github.com/ccerv1/rf-weights-testing/internal/engine"
	"github.com/ccerv1/rf-weights-testing/internal/logger"
	"github.com/ccerv1/rf-weights-testing/internal/metrics"
	"github.com/ccerv1/rf-weights-testing/internal/relationship"
	"github.com/ccerv1/rf-weights-testing/internal/viz"
	"github.com/labstack/echo/v4"
)

type graphResponse struct {
	RunID string         `json:"runId"`
	Graph *viz.GraphData `json:"graph"`
	Stats engine.Stats   `json:"stats"`
}

type metricSchema struct {
	Column        string  `json:"column"`
	Key           string  `json:"key"`
	Label         string  `json:"label"`
	DefaultWeight float64 `json:"defaultWeight"`
}

type bounds struct {
	Min     int `json:"min"`
	Max     int `json:"max"`
	Default int `json:"default"`
}

type schemaResponse struct {
	Metrics      []metricSchema    `json:"metrics"`
	TopProjects  bounds            `json:"topProjects"`
	TopTools     bounds            `json:"topTools"`
	Summaries    []viz.SummaryMode `json:"summaries"`
	Arrangements []string          `json:"arrangements"`
	VisualScale  float64           `json:"visualScale"`
}

func (s *Server) graphHandler(c echo.Context) error {
	res, _, status, err := s.compute(c)
	if err != nil {
		return c.JSON(status, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, graphResponse{RunID: res.RunID, Graph: res.Graph, Stats: res.Stats})
}

func (s *Server) indexHandler(c echo.Context) error {
	res, q, status, err := s.compute(c)
	if err != nil {
		return c.JSON(status, map[string]string{"error": err.Error()})
	}

	opts := viz.DefaultOptions()
	if q.Arrangement != "" {
		opts.Arrangement = q.Arrangement
	}
	html, err := viz.GenerateHTML(res.Graph, opts)
	if err != nil {
		logger.Error("Failed to render graph", "run", res.RunID, "err", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Internal server error"})
	}
	return c.HTML(http.StatusOK, html)
}

// compute parses the request controls and runs the engine. The returned
// status is meaningful only when err is non-nil.
func (s *Server) compute(c echo.Context) (*engine.Result, graphQuery, int, error) {
	var q graphQuery
	if err := c.Bind(&q); err != nil {
		metrics.ObserveComputation(metrics.Graph{}, engine.ErrInvalidParameter, engine.ErrInvalidParameter)
		return nil, q, http.StatusBadRequest, errors.New("Invalid request params")
	}
	if err := c.Validate(&q); err != nil {
		metrics.ObserveComputation(metrics.Graph{}, engine.ErrInvalidParameter, engine.ErrInvalidParameter)
		return nil, q, http.StatusBadRequest, errors.New("Invalid request params: " + err.Error())
	}

	values := c.QueryParams()
	params := q.apply(s.defaults)
	params.RelationshipTypes = relationshipTypes(values)

	weights, err := applyWeights(values, s.defaults.Weights)
	if err != nil {
		metrics.ObserveComputation(metrics.Graph{}, err, engine.ErrInvalidParameter, engine.ErrUnknownMetric)
		return nil, q, http.StatusBadRequest, err
	}
	params.Weights = weights

	res, err := engine.Compute(s.table, params)
	if err != nil {
		metrics.ObserveComputation(metrics.Graph{}, err, engine.ErrInvalidParameter, engine.ErrUnknownMetric)
		if errors.Is(err, engine.ErrInvalidParameter) || errors.Is(err, engine.ErrUnknownMetric) {
			return nil, q, http.StatusBadRequest, err
		}
		logger.Error("Graph computation failed", "err", err)
		return nil, q, http.StatusInternalServerError, errors.New("Internal server error")
	}

	metrics.ObserveComputation(metrics.Graph{
		Projects: res.Graph.CountPopulation(relationship.PopulationProject),
		Tools:    res.Graph.CountPopulation(relationship.PopulationTool),
		Edges:    len(res.Graph.Edges),
		Seconds:  res.Stats.DurationSeconds,
	}, nil)
	return res, q, 0, nil
}

func (s *Server) typesHandler(c echo.Context) error {
	types := s.table.RelationshipTypes()
	if types == nil {
		types = []string{}
	}
	return c.JSON(http.StatusOK, map[string][]string{"types": types})
}

func (s *Server) schemaHandler(c echo.Context) error {
	res := schemaResponse{
		TopProjects:  bounds{Min: 5, Max: 100, Default: s.defaults.TopProjects},
		TopTools:     bounds{Min: 5, Max: 50, Default: s.defaults.TopTools},
		Summaries:    viz.ValidSummaryModes,
		Arrangements: viz.ValidArrangements,
		VisualScale:  engine.VisualScale,
	}
	for _, m := range relationship.Metrics {
		res.Metrics = append(res.Metrics, metricSchema{
			Column:        string(m),
			Key:           m.Key(),
			Label:         m.Label(),
			DefaultWeight: s.defaults.Weights[m],
		})
	}
	return c.JSON(http.StatusOK, res)
}
