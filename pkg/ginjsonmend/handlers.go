// Package ginjsonmend exposes the repair engine over HTTP with gin.
// Routes are registered on a caller-supplied router group, so auth or
// other gatekeeping middleware stays the caller's concern.
package ginjsonmend

import (
	"io"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/invopop/jsonschema"
	"go.uber.org/zap"

	"github.com/jsonmend/jsonmend/pkg/jsonmend"
)

// Server holds the HTTP surface configuration.
type Server struct {
	log  *zap.Logger
	opts []jsonmend.Option

	schemaOnce sync.Once
	schema     *jsonschema.Schema
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLogger sets the request logger. Defaults to a no-op logger.
func WithLogger(log *zap.Logger) ServerOption {
	return func(s *Server) {
		s.log = log
	}
}

// WithRepairOptions forwards engine options to every repair call the
// server makes.
func WithRepairOptions(opts ...jsonmend.Option) ServerOption {
	return func(s *Server) {
		s.opts = opts
	}
}

// New creates a Server.
func New(opts ...ServerOption) *Server {
	s := &Server{log: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register mounts the API on g:
//
//	POST /repair    repair input, return the full RepairResult
//	POST /minify    repair and compact, input passthrough on failure
//	POST /format    repair and indent, input passthrough on failure
//	POST /validate  check a field-mapping document's shape
//	GET  /schema    JSON Schema of RepairResult
func (s *Server) Register(g *gin.RouterGroup) {
	g.POST("/repair", s.handleRepair)
	g.POST("/minify", s.handleMinify)
	g.POST("/format", s.handleFormat)
	g.POST("/validate", s.handleValidate)
	g.GET("/schema", s.handleSchema)
}

// RepairRequest is the body of /repair and /minify.
type RepairRequest struct {
	Input string `json:"input" binding:"required"`
}

// FormatRequest is the body of /format.
type FormatRequest struct {
	Input  string `json:"input" binding:"required"`
	Indent int    `json:"indent"`
}

// TextResponse carries the output of /minify and /format.
type TextResponse struct {
	Output string `json:"output"`
}

func (s *Server) handleRepair(c *gin.Context) {
	var req RepairRequest
	if !bindJSON(c, &req) {
		return
	}
	res := jsonmend.Repair(req.Input, s.opts...)
	s.log.Info("repair",
		zap.Bool("success", res.Success),
		zap.Int("fixes", len(res.Fixes)),
	)
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleMinify(c *gin.Context) {
	var req RepairRequest
	if !bindJSON(c, &req) {
		return
	}
	c.JSON(http.StatusOK, TextResponse{Output: jsonmend.Minify(req.Input)})
}

func (s *Server) handleFormat(c *gin.Context) {
	var req FormatRequest
	if !bindJSON(c, &req) {
		return
	}
	indent := req.Indent
	if indent <= 0 {
		indent = 2
	}
	c.JSON(http.StatusOK, TextResponse{Output: jsonmend.Format(req.Input, indent)})
}

// handleValidate accepts the mapping document itself as the request
// body. Almost-JSON documents are accepted; they go through the repair
// pipeline before shape validation.
func (s *Server) handleValidate(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res := jsonmend.Repair(string(body), s.opts...)
	if !res.Success {
		c.JSON(http.StatusOK, ValidateResponse{Valid: false, Errors: res.Errors})
		return
	}
	c.JSON(http.StatusOK, ValidateMapping(res.Data))
}

func (s *Server) handleSchema(c *gin.Context) {
	s.schemaOnce.Do(func() {
		reflector := &jsonschema.Reflector{
			AllowAdditionalProperties: true,
		}
		s.schema = reflector.Reflect(&jsonmend.RepairResult{})
	})
	c.JSON(http.StatusOK, s.schema)
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}
