package game

import (
	"slices"
	"sync"
	"time"

	"github.com/lox/holdem-table/internal/deck"
	"github.com/lox/holdem-table/internal/evaluator"
)

// EventType represents a game event type with type safety
type EventType string

const (
	EventTypeHandStart     EventType = "hand_start"
	EventTypeStageChanged  EventType = "stage_changed"
	EventTypeCardsDealt    EventType = "cards_dealt"
	EventTypePlayerAction  EventType = "player_action"
	EventTypeRoundComplete EventType = "round_complete"
	EventTypeGameOver      EventType = "game_over"
	EventTypeSound         EventType = "sound"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents any event that occurs during a game. Events carry
// copies of state, never pointers into the round.
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// HandStartEvent is published when a new round begins
type HandStartEvent struct {
	RoundID   string
	Number    int
	Dealer    string
	Players   []PlayerSnapshot
	timestamp time.Time
}

func (e HandStartEvent) EventType() EventType { return EventTypeHandStart }
func (e HandStartEvent) Timestamp() time.Time { return e.timestamp }

// NewHandStartEvent creates a new hand start event
func NewHandStartEvent(at time.Time, roundID string, number int, players []*Player) HandStartEvent {
	e := HandStartEvent{RoundID: roundID, Number: number, Players: snapshotAll(players), timestamp: at}
	for _, p := range players {
		if p.Dealer {
			e.Dealer = p.Name
		}
	}
	return e
}

// StageChangedEvent is published when the round enters a new stage
type StageChangedEvent struct {
	RoundID   string
	Stage     Stage
	Community []deck.Card
	Players   []PlayerSnapshot
	Pot       int
	timestamp time.Time
}

func (e StageChangedEvent) EventType() EventType { return EventTypeStageChanged }
func (e StageChangedEvent) Timestamp() time.Time { return e.timestamp }

// NewStageChangedEvent creates a new stage changed event
func NewStageChangedEvent(at time.Time, rc *RoundContext) StageChangedEvent {
	return StageChangedEvent{
		RoundID:   rc.ID,
		Stage:     rc.Stage,
		Community: slices.Clone(rc.Community),
		Players:   snapshotAll(rc.Players),
		Pot:       rc.Pot.Amount(),
		timestamp: at,
	}
}

// CardsDealtEvent is published for each card dealt. Player is empty for
// community cards.
type CardsDealtEvent struct {
	Player    string
	Card      deck.Card
	Stage     Stage
	timestamp time.Time
}

func (e CardsDealtEvent) EventType() EventType { return EventTypeCardsDealt }
func (e CardsDealtEvent) Timestamp() time.Time { return e.timestamp }

// IsCommunity reports whether the card went to the board
func (e CardsDealtEvent) IsCommunity() bool { return e.Player == "" }

// NewCardsDealtEvent creates a new cards dealt event
func NewCardsDealtEvent(at time.Time, player string, card deck.Card, stage Stage) CardsDealtEvent {
	return CardsDealtEvent{Player: player, Card: card, Stage: stage, timestamp: at}
}

// PlayerActionEvent is published when a player acts or posts a blind
type PlayerActionEvent struct {
	Player    PlayerSnapshot
	Action    ActionKind
	Amount    int // chips moved into the pot by this action
	Stage     Stage
	Reasoning string
	PotAfter  int
	timestamp time.Time
}

func (e PlayerActionEvent) EventType() EventType { return EventTypePlayerAction }
func (e PlayerActionEvent) Timestamp() time.Time { return e.timestamp }

// NewPlayerActionEvent creates a new player action event
func NewPlayerActionEvent(at time.Time, p *Player, action ActionKind, amount int, stage Stage, reasoning string, potAfter int) PlayerActionEvent {
	return PlayerActionEvent{
		Player:    p.Snapshot(),
		Action:    action,
		Amount:    amount,
		Stage:     stage,
		Reasoning: reasoning,
		PotAfter:  potAfter,
		timestamp: at,
	}
}

// WinnerInfo describes one winner of a round
type WinnerInfo struct {
	Name   string
	Score  evaluator.Score
	Amount int
	Hand   []deck.Card
}

// RoundCompleteEvent is published after the pot has been paid out
type RoundCompleteEvent struct {
	RoundID   string
	Winners   []WinnerInfo
	PotAmount int
	Remainder int // chips left over by the split and not paid to anyone
	Board     []deck.Card
	Players   []PlayerSnapshot
	timestamp time.Time
}

func (e RoundCompleteEvent) EventType() EventType { return EventTypeRoundComplete }
func (e RoundCompleteEvent) Timestamp() time.Time { return e.timestamp }

// NewRoundCompleteEvent creates a new round complete event
func NewRoundCompleteEvent(at time.Time, rc *RoundContext, result *RoundResult) RoundCompleteEvent {
	return RoundCompleteEvent{
		RoundID:   result.RoundID,
		Winners:   slices.Clone(result.Winners),
		PotAmount: result.PotAmount,
		Remainder: result.Remainder,
		Board:     slices.Clone(rc.Community),
		Players:   snapshotAll(rc.Players),
		timestamp: at,
	}
}

// GameOverReason explains why a session ended
type GameOverReason string

const (
	ReasonHumanBroke   GameOverReason = "human_broke"
	ReasonLastStanding GameOverReason = "last_player_standing"
)

// GameOverEvent is published when the session ends
type GameOverEvent struct {
	Winner    string
	Money     int
	Reason    GameOverReason
	Rounds    int
	timestamp time.Time
}

func (e GameOverEvent) EventType() EventType { return EventTypeGameOver }
func (e GameOverEvent) Timestamp() time.Time { return e.timestamp }

// NewGameOverEvent creates a new game over event
func NewGameOverEvent(at time.Time, winner string, money int, reason GameOverReason, rounds int) GameOverEvent {
	return GameOverEvent{Winner: winner, Money: money, Reason: reason, Rounds: rounds, timestamp: at}
}

// Sound names an audio cue
type Sound string

const (
	SoundCard          Sound = "card"
	SoundClink         Sound = "clink"
	SoundFold          Sound = "fold"
	SoundLevelComplete Sound = "levelcomplete"
	SoundDrums         Sound = "drums"
)

// SoundEvent asks the front-end to play a cue. Nothing waits on it.
type SoundEvent struct {
	Sound     Sound
	timestamp time.Time
}

func (e SoundEvent) EventType() EventType { return EventTypeSound }
func (e SoundEvent) Timestamp() time.Time { return e.timestamp }

// NewSoundEvent creates a new sound event
func NewSoundEvent(at time.Time, s Sound) SoundEvent {
	return SoundEvent{Sound: s, timestamp: at}
}

// EventSubscriber can subscribe to game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// SubscriberFunc adapts a function to EventSubscriber
type SubscriberFunc func(GameEvent)

func (f SubscriberFunc) OnEvent(event GameEvent) { f(event) }

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus delivers events synchronously in subscription order
type SimpleEventBus struct {
	mu          sync.RWMutex
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() *SimpleEventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events. The subscriber
// must be comparable; a SubscriberFunc cannot be unsubscribed.
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = slices.Delete(bus.subscribers, i, i+1)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	bus.mu.RLock()
	subs := slices.Clone(bus.subscribers)
	bus.mu.RUnlock()

	for _, subscriber := range subs {
		subscriber.OnEvent(event)
	}
}
