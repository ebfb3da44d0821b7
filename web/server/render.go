package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"log"
	"net/http"
	"time"

	"github.com/df07/go-pathtracer/pkg/config"
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/imageio"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/google/uuid"
)

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// RenderComplete is the payload of the final "complete" event
type RenderComplete struct {
	RenderID    string      `json:"renderId"`
	Scene       string      `json:"scene"`
	Width       int         `json:"width"`
	Height      int         `json:"height"`
	Format      string      `json:"format"`
	ContentType string      `json:"contentType"`
	ImageData   string      `json:"imageData"` // Base64 encoded image
	Stats       RenderStats `json:"stats"`
	ElapsedMs   int64       `json:"elapsedMs"`
}

// RenderStats represents render statistics
type RenderStats struct {
	TotalPixels          int     `json:"totalPixels"`
	TotalSamples         int     `json:"totalSamples"`
	TotalRays            int     `json:"totalRays"`
	SamplesPerPixel      int     `json:"samplesPerPixel"`
	MaxDepth             int     `json:"maxDepth"`
	NumWorkers           int     `json:"numWorkers"`
	AverageRaysPerSample float64 `json:"averageRaysPerSample"`
	RaysPerSecond        float64 `json:"raysPerSecond"`
	PrimitiveCount       int     `json:"primitiveCount"`
}

// handleRender renders a scene and streams console output and the finished image via SSE
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)

	ctx := r.Context()

	sseEventChan := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		s.writeSSEEvents(w, ctx, sseEventChan)
	}()
	defer func() {
		close(sseEventChan)
		<-writerDone
	}()

	req, sceneObj, err := s.parseRenderRequest(r)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	renderID, consoleChan, webLogger := s.setupConsoleLogging()
	consoleDone := make(chan struct{})
	go func() {
		defer close(consoleDone)
		s.streamConsoleMessages(ctx, consoleChan, sseEventChan)
	}()

	startTime := time.Now()
	img, stats, err := s.render(ctx, req, sceneObj, webLogger)

	// The renderer has returned, so nothing logs to the console channel any more
	close(consoleChan)
	<-consoleDone

	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Rendering failed: %v", err))
		return
	}

	s.handleComplete(ctx, sseEventChan, renderID, req, sceneObj, img, stats, startTime)
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, *scene.Scene, error) {
	req, sceneObj, err := s.parseSceneRequest(r)
	if err != nil {
		return nil, nil, err
	}

	query := r.URL.Query()
	defaults := sceneObj.SamplingConfig
	if req.SamplesPerPixel, err = parseIntParam(query, "samples", defaults.SamplesPerPixel, 1, MaxSamples); err != nil {
		return nil, nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "depth", defaults.MaxDepth, 0, MaxDepth); err != nil {
		return nil, nil, err
	}
	if req.Seed, err = parseInt64Param(query, "seed", config.DefaultSeed); err != nil {
		return nil, nil, err
	}

	req.Format = imageio.FormatPNG
	if format := query.Get("format"); format != "" {
		if req.Format, err = imageio.ParseFormat(format); err != nil {
			return nil, nil, err
		}
	}

	if req.Width*req.Height > 800*600 && req.SamplesPerPixel > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, sceneObj, nil
}

// render runs the path tracer for a parsed request
func (s *Server) render(ctx context.Context, req *RenderRequest, sceneObj *scene.Scene, logger core.Logger) (image.Image, renderer.RenderStats, error) {
	renderConfig := renderer.RenderConfig{
		Width:            req.Width,
		Height:           req.Height,
		SamplesPerPixel:  req.SamplesPerPixel,
		MaxDepth:         req.MaxDepth,
		Seed:             req.Seed,
		ProgressInterval: time.Second,
	}

	rt, err := renderer.NewRaytracer(sceneObj, renderConfig, nil, logger)
	if err != nil {
		return nil, renderer.RenderStats{}, err
	}

	logger.Printf("Scene %s (%d primitives)\n", req.Scene, sceneObj.GetPrimitiveCount())

	fb, stats, err := rt.Render(ctx)
	if err != nil {
		return nil, stats, err
	}
	return imageio.FramebufferImage(fb), stats, nil
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// setupConsoleLogging creates the console channel and web logger for a render
func (s *Server) setupConsoleLogging() (string, chan ConsoleMessage, core.Logger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := uuid.New().String()
	return renderID, consoleChan, NewWebLogger(renderID, consoleChan)
}

// writeSSEEvents handles writing all SSE events in a single goroutine.
// After a failed write it keeps draining so senders never block.
func (s *Server) writeSSEEvents(w http.ResponseWriter, ctx context.Context, sseEventChan chan SSEEvent) {
	broken := false
	for {
		select {
		case event, ok := <-sseEventChan:
			if !ok {
				return
			}
			if broken {
				continue
			}

			if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
				broken = true
				continue
			}
			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}

		case <-ctx.Done():
			return
		}
	}
}

// streamConsoleMessages forwards console messages until the channel is closed
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan chan ConsoleMessage, sseEventChan chan SSEEvent) {
	for {
		select {
		case consoleMsg, ok := <-consoleChan:
			if !ok {
				return
			}

			data, err := json.Marshal(consoleMsg)
			if err != nil {
				log.Printf("Error marshaling console message: %v", err)
				continue
			}

			select {
			case sseEventChan <- SSEEvent{Type: "console", Data: string(data)}:
			case <-ctx.Done():
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

// handleComplete encodes the image and sends the completion event
func (s *Server) handleComplete(ctx context.Context, sseEventChan chan SSEEvent, renderID string,
	req *RenderRequest, sceneObj *scene.Scene, img image.Image, stats renderer.RenderStats, startTime time.Time) {

	imageData, err := s.imageToBase64(img, req.Format)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Failed to encode image: %v", err))
		return
	}

	complete := RenderComplete{
		RenderID:    renderID,
		Scene:       req.Scene,
		Width:       req.Width,
		Height:      req.Height,
		Format:      string(req.Format),
		ContentType: req.Format.ContentType(),
		ImageData:   imageData,
		Stats: RenderStats{
			TotalPixels:          stats.TotalPixels,
			TotalSamples:         stats.TotalSamples,
			TotalRays:            stats.TotalRays,
			SamplesPerPixel:      stats.SamplesPerPixel,
			MaxDepth:             stats.MaxDepth,
			NumWorkers:           stats.NumWorkers,
			AverageRaysPerSample: stats.AverageRaysPerSample(),
			RaysPerSecond:        stats.RaysPerSecond(),
			PrimitiveCount:       sceneObj.GetPrimitiveCount(),
		},
		ElapsedMs: time.Since(startTime).Milliseconds(),
	}

	data, err := json.Marshal(complete)
	if err != nil {
		s.handleError(ctx, sseEventChan, fmt.Sprintf("Failed to encode result: %v", err))
		return
	}

	select {
	case sseEventChan <- SSEEvent{Type: "complete", Data: string(data)}:
	case <-ctx.Done():
	}
}

// imageToBase64 encodes an image in the requested format as base64
func (s *Server) imageToBase64(img image.Image, format imageio.Format) (string, error) {
	var buf bytes.Buffer
	if err := imageio.Encode(&buf, img, imageio.Options{Format: format}); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// handleError sends an error event to the SSE channel
func (s *Server) handleError(ctx context.Context, sseEventChan chan SSEEvent, message string) {
	select {
	case sseEventChan <- SSEEvent{Type: "error", Data: message}:
	case <-ctx.Done():
	}
}
