package phh

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lox/holdem-table/internal/deck"
	"github.com/lox/holdem-table/internal/game"
)

const variantNoLimit = "NT"

// Recorder builds a hand history from game events and writes each round
// when it completes. Seats are numbered from the first player after the
// dealer, as PHH expects.
type Recorder struct {
	mu      sync.Mutex
	w       io.Writer
	table   string
	minBet  int
	logger  *log.Logger
	section int
	cur     *handState
}

type handState struct {
	hist       *HandHistory
	seats      map[string]int
	holes      map[string][]deck.Card
	board      []deck.Card
	streetHigh int
}

var _ game.EventSubscriber = (*Recorder)(nil)

// NewRecorder writes hands to w
func NewRecorder(w io.Writer, table string, minBet int, logger *log.Logger) *Recorder {
	return &Recorder{w: w, table: table, minBet: minBet, logger: logger.WithPrefix("phh")}
}

// OpenSession appends to the session file at path, creating its directory
func OpenSession(path, table string, minBet int, logger *log.Logger) (*Recorder, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("phh: create dir: %w", err)
	}
	last, err := lastSection(path)
	if err != nil {
		return nil, nil, fmt.Errorf("phh: read sections: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("phh: open session: %w", err)
	}
	r := NewRecorder(f, table, minBet, logger)
	r.section = last
	return r, f, nil
}

// lastSection returns the highest section number already in the file
func lastSection(path string) (int, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	defer f.Close()

	last := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "[") || !strings.HasSuffix(line, "]") {
			continue
		}
		if n, err := strconv.Atoi(line[1 : len(line)-1]); err == nil && n > last {
			last = n
		}
	}
	return last, scanner.Err()
}

// OnEvent implements game.EventSubscriber
func (r *Recorder) OnEvent(e game.GameEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ev, ok := e.(game.HandStartEvent); ok {
		r.start(ev)
		return
	}
	h := r.cur
	if h == nil {
		return
	}

	switch e := e.(type) {
	case game.StageChangedEvent:
		h.flushBoard()
		switch e.Stage {
		case game.StageFlop, game.StageTurn, game.StageRiver:
			h.streetHigh = 0
		}

	case game.CardsDealtEvent:
		if e.IsCommunity() {
			h.board = append(h.board, e.Card)
			return
		}
		seat, ok := h.seats[e.Player]
		if !ok {
			return
		}
		h.holes[e.Player] = append(h.holes[e.Player], e.Card)
		if len(h.holes[e.Player]) == 2 {
			h.hist.Actions = append(h.hist.Actions, fmt.Sprintf("d dh p%d %s", seat+1, FormatCards(h.holes[e.Player])))
		}

	case game.PlayerActionEvent:
		h.flushBoard()
		h.action(e)

	case game.RoundCompleteEvent:
		h.flushBoard()
		r.finish(e)
	}
}

func (r *Recorder) start(e game.HandStartEvent) {
	n := len(e.Players)
	dealer := max(slices.IndexFunc(e.Players, func(p game.PlayerSnapshot) bool { return p.Dealer }), 0)

	hist := &HandHistory{
		Variant:           variantNoLimit,
		Table:             r.table,
		SeatCount:         n,
		Antes:             make([]int, n),
		BlindsOrStraddles: make([]int, n),
		MinBet:            r.minBet,
		StartingStacks:    make([]int, n),
		Players:           make([]string, n),
		HandID:            e.RoundID,
		Timestamp:         e.Timestamp(),
	}
	h := &handState{hist: hist, seats: make(map[string]int, n), holes: make(map[string][]deck.Card, n)}
	for i, p := range e.Players {
		seat := (i - dealer - 1 + 2*n) % n
		h.seats[p.Name] = seat
		hist.Players[seat] = p.Name
		hist.StartingStacks[seat] = p.Money
	}
	r.cur = h
}

func (h *handState) flushBoard() {
	if len(h.board) == 0 {
		return
	}
	h.hist.Actions = append(h.hist.Actions, "d db "+FormatCards(h.board))
	h.board = h.board[:0]
}

func (h *handState) action(e game.PlayerActionEvent) {
	seat, ok := h.seats[e.Player.Name]
	if !ok {
		return
	}
	total := e.Player.BetAmount

	if e.Stage == game.StageBlind {
		h.hist.BlindsOrStraddles[seat] = total
		h.streetHigh = max(h.streetHigh, total)
		return
	}

	kind := e.Action
	if kind == game.AllIn && total <= h.streetHigh {
		kind = game.Call
	}
	if line, ok := FormatAction(seat, kind, total); ok {
		h.hist.Actions = append(h.hist.Actions, line)
	}
	h.streetHigh = max(h.streetHigh, total)
}

func (r *Recorder) finish(e game.RoundCompleteEvent) {
	h := r.cur
	r.cur = nil
	hist := h.hist

	showdown := len(e.Winners) > 0 && e.Winners[0].Score.Value > 0
	hist.FinishingStacks = make([]int, len(hist.Players))
	hist.Winnings = make([]int, len(hist.Players))

	var shown []string
	for _, p := range e.Players {
		seat, ok := h.seats[p.Name]
		if !ok {
			continue
		}
		hist.FinishingStacks[seat] = p.Money
		if showdown && p.InPlay && len(p.Hand) > 0 {
			shown = append(shown, fmt.Sprintf("p%d sm %s", seat+1, FormatCards(p.Hand)))
		}
	}
	slices.Sort(shown)
	hist.Actions = append(hist.Actions, shown...)

	for _, w := range e.Winners {
		if seat, ok := h.seats[w.Name]; ok {
			hist.Winnings[seat] += w.Amount
		}
	}
	hist.populateTime()

	r.section++
	if err := r.write(hist); err != nil {
		r.logger.Warn("Failed to write hand history", "hand", hist.HandID, "error", err)
	}
}

func (r *Recorder) write(hist *HandHistory) error {
	if _, err := fmt.Fprintf(r.w, "[%d]\n", r.section); err != nil {
		return err
	}
	if err := Encode(r.w, hist); err != nil {
		return err
	}
	_, err := io.WriteString(r.w, "\n")
	return err
}
