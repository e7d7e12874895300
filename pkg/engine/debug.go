package engine

import (
	"encoding/json"
	"fmt"
	"image/png"
	"net/http"

	"github.com/go-drift/pocketdash/pkg/core"
	"github.com/go-drift/pocketdash/pkg/graphics"
)

// TreeNode is a component in the serialized tree.
type TreeNode struct {
	Name      string         `json:"name"`
	ID        uint64         `json:"id"`
	Size      string         `json:"size"`
	Active    bool           `json:"active"`
	Mounted   bool           `json:"mounted"`
	Intervals []IntervalNode `json:"intervals,omitempty"`
	Children  []TreeNode     `json:"children,omitempty"`
}

// IntervalNode is an interval in the serialized tree.
type IntervalNode struct {
	Period   string `json:"period"`
	Status   string `json:"status"`
	Ticks    int    `json:"ticks"`
	Overruns int    `json:"overruns"`
}

// DebugHandler serves the engine's state for inspection:
//
//	GET /health     {"status":"ok"}
//	GET /tree       the component tree as JSON
//	GET /frames     recent frame timings as JSON
//	GET /frame.png  the last frame shown
func (e *Engine) DebugHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", e.handleHealth)
	mux.HandleFunc("/tree", e.handleTree)
	mux.HandleFunc("/frames", e.handleFrames)
	mux.HandleFunc("/frame.png", e.handleFrame)
	return mux
}

func (e *Engine) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (e *Engine) handleTree(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	root := e.Root()
	if root == nil {
		http.Error(w, "no component tree", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, serializeTree(root, 0))
}

func (e *Engine) handleFrames(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if e.trace == nil {
		http.Error(w, "frame tracing disabled", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, e.trace.Snapshot())
}

func (e *Engine) handleFrame(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	frame := e.Frame()
	if frame == nil {
		http.Error(w, "no frame yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, frame); err != nil {
		http.Error(w, fmt.Sprintf("png encode error: %v", err), http.StatusInternalServerError)
	}
}

func serializeTree(c core.Component, depth int) TreeNode {
	b := core.BaseOf(c)
	node := TreeNode{
		Name:    b.Name(),
		ID:      b.ID(),
		Size:    graphics.SizeString(b.Size()),
		Active:  b.Active(),
		Mounted: b.Mounted(),
	}
	for _, iv := range b.Intervals() {
		node.Intervals = append(node.Intervals, IntervalNode{
			Period:   iv.Period().String(),
			Status:   iv.Status().String(),
			Ticks:    iv.Ticks(),
			Overruns: iv.Overruns(),
		})
	}
	if depth >= maxTreeDepth {
		return node
	}
	for _, child := range b.Children() {
		node.Children = append(node.Children, serializeTree(child, depth+1))
	}
	return node
}

func writeJSON(w http.ResponseWriter, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		http.Error(w, fmt.Sprintf("json encode error: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}
