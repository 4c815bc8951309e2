// Package game runs a single Texas Hold'em table: the stage machine that
// deals and collects bets for one round, the seat scheduler, the AI
// opponents, and the multi-round session that removes broke players.
//
// A Controller owns all round state. Presentation is attached through the
// EventBus, and the only point where play blocks is HumanAgent.RequestDecision.
package game
