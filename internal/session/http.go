package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"lifedeck/internal/card"
	"lifedeck/internal/config"
	"lifedeck/internal/game"
)

// Handler handles game-related HTTP requests.
type Handler struct {
	mgr   *Manager
	files *FileRepo
	cfg   *config.Config
}

// NewHandler creates a new game handler. files may be nil to disable
// autosave and restore.
func NewHandler(mgr *Manager, files *FileRepo, cfg *config.Config) *Handler {
	return &Handler{mgr: mgr, files: files, cfg: cfg}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"error": msg})
}

func decodeJSON(r *http.Request, out any) error {
	dec := json.NewDecoder(r.Body)
	return dec.Decode(out)
}

// CreateRequest is the body for POST /api/games.
type CreateRequest struct {
	Difficulty string `json:"difficulty,omitempty"`
	Seed       int64  `json:"seed,omitempty"`
}

// POST /api/games
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeErr(w, 400, "invalid json")
			return
		}
	}

	cfg := *h.cfg
	if req.Difficulty != "" && req.Difficulty != h.cfg.Difficulty {
		// A different difficulty means the preset, not the server
		// config with one field swapped.
		cfg = config.Config{Difficulty: req.Difficulty}
		cfg.ApplyDefaults()
	}
	if err := cfg.Validate(); err != nil {
		writeErr(w, 400, err.Error())
		return
	}

	snap, err := h.mgr.Create(&cfg, req.Seed)
	if err != nil {
		writeErr(w, 400, err.Error())
		return
	}
	h.autosave(snap.ID)
	writeJSON(w, http.StatusCreated, snap)
}

// GET /api/games
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, 200, map[string]any{"games": h.mgr.IDs()})
}

// GET /api/games/{id}/state
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	snap, err := h.mgr.SnapshotOf(r.PathValue("id"))
	if err != nil {
		writeErr(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, 200, snap)
}

// InsuranceResponse is the response for GET /api/games/{id}/insurances.
type InsuranceResponse struct {
	Active   []card.Card `json:"active"`
	Expired  []card.Card `json:"expired"`
	Burden   int         `json:"burden"`
	Renewals any         `json:"pending_renewals"`
}

// GET /api/games/{id}/insurances
func (h *Handler) Insurances(w http.ResponseWriter, r *http.Request) {
	var resp InsuranceResponse
	err := h.mgr.Do(r.PathValue("id"), func(g *game.Game) error {
		resp = InsuranceResponse{
			Active:   g.ActiveInsurances(),
			Expired:  g.ExpiredInsurances(),
			Burden:   g.InsuranceBurden(),
			Renewals: g.PendingRenewals(),
		}
		return nil
	})
	if err != nil {
		writeErr(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, 200, resp)
}

// POST /api/games/{id}/restore
func (h *Handler) RestoreSaved(w http.ResponseWriter, r *http.Request) {
	if h.files == nil {
		writeErr(w, http.StatusNotImplemented, "persistence disabled")
		return
	}
	id := r.PathValue("id")
	snap, err := h.files.Load(id)
	if err != nil {
		writeErr(w, statusFor(err), err.Error())
		return
	}
	g, err := game.Restore(snap, game.Options{Recorder: h.mgr.recorder})
	if err != nil {
		writeErr(w, 500, err.Error())
		return
	}
	h.mgr.Adopt(g)
	writeJSON(w, 200, g.Snapshot())
}

// DELETE /api/games/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	h.mgr.Remove(id)
	if h.files != nil {
		if err := h.files.Delete(id); err != nil {
			writeErr(w, 500, err.Error())
			return
		}
	}
	writeJSON(w, 200, map[string]any{"ok": true})
}

// CommandRequest is the body for POST /api/games/{id}/cmd.
type CommandRequest struct {
	Cmd  string         `json:"cmd"`
	Args map[string]any `json:"args"`
}

// CommandResponse is the response for POST /api/games/{id}/cmd.
type CommandResponse struct {
	OK     bool           `json:"ok"`
	Result any            `json:"result,omitempty"`
	State  *game.Snapshot `json:"state,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// POST /api/games/{id}/cmd
func (h *Handler) Command(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req CommandRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErr(w, 400, "invalid json")
		return
	}

	var result any
	var snap game.Snapshot
	err := h.mgr.Do(id, func(g *game.Game) error {
		var cmdErr error
		result, cmdErr = executeCommand(g, req.Cmd, req.Args)
		if cmdErr != nil {
			return cmdErr
		}
		snap = g.Snapshot()
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			writeErr(w, 404, err.Error())
			return
		}
		writeJSON(w, 400, CommandResponse{OK: false, Error: err.Error()})
		return
	}

	h.autosave(id)
	writeJSON(w, 200, CommandResponse{OK: true, Result: result, State: &snap})
}

// executeCommand dispatches the command to the engine.
func executeCommand(g *game.Game, cmd string, args map[string]any) (any, error) {
	switch cmd {
	case "game.start":
		return nil, g.Start()
	case "game.draw":
		n, err := getInt(args, "count")
		if err != nil {
			return nil, err
		}
		return mustResult(g.DrawCards(n))
	case "challenge.start":
		return mustResult(g.StartChallenge())
	case "challenge.toggle_card":
		id, err := getString(args, "card_id")
		if err != nil {
			return nil, err
		}
		return nil, g.ToggleCardSelection(id)
	case "challenge.resolve":
		return mustResult(g.ResolveChallenge())
	case "reward.select_card":
		id, err := getString(args, "card_id")
		if err != nil {
			return nil, err
		}
		return mustResult(g.SelectCard(id))
	case "insurance.select_type":
		kind, err := getString(args, "kind")
		if err != nil {
			return nil, err
		}
		duration, err := getString(args, "duration")
		if err != nil {
			return nil, err
		}
		return mustResult(g.SelectInsuranceType(card.InsuranceKind(kind), card.DurationKind(duration)))
	case "insurance.renew":
		id, err := getString(args, "card_id")
		if err != nil {
			return nil, err
		}
		return mustResult(g.RenewInsurance(id))
	case "insurance.expire":
		id, err := getString(args, "card_id")
		if err != nil {
			return nil, err
		}
		return nil, g.ExpireInsurance(id)
	case "turn.next":
		return mustResult(g.NextTurn())
	case "stage.advance":
		return nil, g.AdvanceStage()
	case "vitality.damage":
		n, err := getInt(args, "amount")
		if err != nil {
			return nil, err
		}
		return nil, g.ApplyDamage(n)
	case "vitality.heal":
		n, err := getInt(args, "amount")
		if err != nil {
			return nil, err
		}
		return nil, g.Heal(n)
	default:
		return nil, fmt.Errorf("unknown command: %s", cmd)
	}
}

func mustResult[T any](v T, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (h *Handler) autosave(id string) {
	if h.files == nil {
		return
	}
	if snap, err := h.mgr.SnapshotOf(id); err == nil {
		_ = h.files.Save(snap)
	}
}

func statusFor(err error) int {
	if errors.Is(err, ErrNotFound) {
		return 404
	}
	return 500
}

// Helper to get string from args
func getString(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok {
		return "", fmt.Errorf("missing required field: %s", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %s must be a string", key)
	}
	return s, nil
}

// Helper to get int from args (JSON numbers arrive as float64)
func getInt(args map[string]any, key string) (int, error) {
	v, ok := args[key]
	if !ok {
		return 0, fmt.Errorf("missing required field: %s", key)
	}
	f, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("field %s must be a number", key)
	}
	return int(f), nil
}
