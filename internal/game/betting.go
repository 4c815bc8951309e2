package game

import (
	"context"
	"fmt"
)

// bettingRound collects bets until every player still in play has matched
// the highest bet or gone all in, then moves to next (or straight to the
// showdown when at most one player is left).
func (c *Controller) bettingRound(ctx context.Context, next Stage) error {
	rc := c.rc
	rc.raises = 0

	limit := bettingLimit(len(rc.Players), c.rules.MaxRaisesPerRound)
	decisions := 0

	for !rc.IsEndRound() {
		if decisions++; decisions > limit {
			c.logger.Error("Betting round did not converge, ending it", "stage", rc.Stage, "decisions", decisions)
			break
		}

		idx, err := NextPlayer(rc.Players)
		if err != nil {
			return fmt.Errorf("betting %s: %w", rc.Stage, err)
		}
		p := rc.Players[idx]
		if p.AllIn {
			p.FinishedBetting = true
			continue
		}

		d, err := c.decide(ctx, p)
		if err != nil {
			return err
		}
		c.apply(p, d)

		if err := c.pacer.WaitAction(ctx); err != nil {
			return err
		}
	}

	rc.resetPlayerBets(false)
	if rc.MoreThanOnePlayerLeft() {
		rc.Stage = next
	} else {
		rc.Stage = StageShowdown
	}
	return nil
}

// bettingLimit bounds the decisions in one betting round. Each capped raise
// and each all-in above the high bet can reopen action for every seat, so
// the bound covers one pass per reopening plus the opening pass.
func bettingLimit(players, maxRaises int) int {
	return (players + 1) * (maxRaises + 2) * 2
}

func (c *Controller) decide(ctx context.Context, p *Player) (Decision, error) {
	if p.Human && c.human != nil {
		view := newPlayerView(p, c.rc, c.rules.MinimumBet, c.rules.MaximumBet)
		d, err := c.human.RequestDecision(ctx, view)
		if err != nil {
			return Decision{}, fmt.Errorf("decision for %s: %w", p.Name, err)
		}
		return d, nil
	}
	return c.ai.Decide(ctx, p, c.rc, c.rc.CallAmount(p) == 0), nil
}

// apply carries out a decision. Short stacks turn calls and raises into
// all-ins, and raises past the per-round cap become calls.
func (c *Controller) apply(p *Player, d Decision) {
	switch d.Kind {
	case Fold:
		c.fold(p, d.Reasoning)
	case Check:
		c.check(p, d.Reasoning)
	case Call:
		c.call(p, d.Reasoning)
	case Raise:
		if c.rc.raises >= c.rules.MaxRaisesPerRound {
			c.logger.Debug("Raise cap reached, calling instead", "player", p.Name)
			c.call(p, d.Reasoning)
			return
		}
		c.raise(p, d.Amount, d.Reasoning)
	case AllIn:
		c.allIn(p, d.Reasoning)
	default:
		c.logger.Warn("Unknown decision, checking", "player", p.Name, "kind", d.Kind)
		c.check(p, d.Reasoning)
	}
}

func (c *Controller) publishAction(p *Player, kind ActionKind, amount int, reason string) {
	c.logger.Debug("Action", "player", p.Name, "action", kind, "amount", amount, "reason", reason)
	c.bus.Publish(NewPlayerActionEvent(c.clock.Now(), p, kind, amount, c.rc.Stage, reason, c.rc.Pot.Amount()))
}

func (c *Controller) fold(p *Player, reason string) {
	p.InPlay = false
	p.FinishedBetting = true
	p.LastAction = Fold
	c.sound(SoundFold)
	c.publishAction(p, Fold, 0, reason)
}

func (c *Controller) check(p *Player, reason string) {
	p.FinishedBetting = true
	p.LastAction = Check
	c.publishAction(p, Check, 0, reason)
}

func (c *Controller) call(p *Player, reason string) {
	diff := c.rc.CallAmount(p)
	if diff <= 0 {
		c.check(p, reason)
		return
	}
	if diff >= p.Money {
		c.allIn(p, reason)
		return
	}

	p.FinishedBetting = true
	c.rc.Pot.AddAmount(diff)
	p.placeBet(diff)
	p.LastAction = Call
	c.sound(SoundClink)
	c.publishAction(p, Call, diff, reason)
}

func (c *Controller) raise(p *Player, amount int, reason string) {
	total := c.rc.CallAmount(p) + amount
	if total >= p.Money {
		c.allIn(p, reason)
		return
	}

	c.rc.resetFinishedBetting()
	p.FinishedBetting = true
	c.rc.Pot.AddAmount(total)
	p.placeBet(total)
	p.LastAction = Raise
	c.rc.raises++
	c.sound(SoundClink)
	c.publishAction(p, Raise, total, reason)
}

// allIn moves the whole stack in. Going over the highest bet reopens the
// action like a raise.
func (c *Controller) allIn(p *Player, reason string) {
	highest := c.rc.HighestBet()
	amount := p.Money

	c.rc.Pot.AddAmount(amount)
	p.placeBet(amount)
	if p.BetAmount > highest {
		c.rc.resetFinishedBetting()
		c.rc.raises++
	}
	p.FinishedBetting = true
	p.AllIn = true
	p.LastAction = AllIn
	c.sound(SoundClink)
	c.publishAction(p, AllIn, amount, reason)
}

// blind posts a forced bet, going all in when the stack cannot cover it
func (c *Controller) blind(p *Player, kind ActionKind, amount int) {
	if amount >= p.Money {
		c.allIn(p, kind.String())
		return
	}
	c.rc.Pot.AddAmount(amount)
	p.placeBet(amount)
	c.sound(SoundClink)
	c.publishAction(p, kind, amount, "")
}
