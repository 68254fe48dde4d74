// Command sim runs headless playthroughs with a simple greedy policy
// and prints aggregate balance stats. Useful for tuning difficulty
// presets without a client.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"lifedeck/internal/card"
	"lifedeck/internal/challenge"
	"lifedeck/internal/config"
	"lifedeck/internal/game"
	"lifedeck/internal/telemetry"
)

func main() {
	games := flag.Int("games", 100, "number of playthroughs to run")
	seed := flag.Int64("seed", 1, "base RNG seed (game i uses seed+i)")
	difficulty := flag.String("difficulty", "normal", "difficulty preset: casual, normal, hard")
	maxTurns := flag.Int("max-turns", 200, "safety cap on turns per game")
	verbose := flag.Bool("v", false, "log each game outcome")
	flag.Parse()

	cfg := &config.Config{Difficulty: *difficulty}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	repo := telemetry.NewMemoryRepository()
	rec := telemetry.Recorder{Repo: repo}

	for i := 0; i < *games; i++ {
		g, err := game.New(game.Options{
			Config:   cfg,
			RNG:      rand.New(rand.NewSource(*seed + int64(i))),
			Recorder: rec,
		})
		if err != nil {
			log.Fatalf("game %d: %v", i, err)
		}
		outcome := play(g, *maxTurns)
		if *verbose {
			log.Printf("game %d: %s after %d turns (vitality %d/%d)",
				i, outcome, g.Turn(), g.Vitality(), g.MaxVitality())
		}
	}

	events, err := repo.GetEvents(time.Time{}, nil)
	if err != nil {
		log.Fatalf("read events: %v", err)
	}
	stats, err := telemetry.CalculateStats(events, time.Time{})
	if err != nil {
		log.Fatalf("stats: %v", err)
	}
	out, _ := json.MarshalIndent(stats, "", "  ")
	fmt.Println(string(out))
}

// play drives one game to a terminal state (or the turn cap) with a
// greedy policy: commit the cheapest hand cards that beat the
// challenge, take the strongest reward, always buy term insurance.
func play(g *game.Game, maxTurns int) string {
	if err := g.Start(); err != nil {
		return "error: " + err.Error()
	}

	for g.Turn() <= maxTurns {
		if g.IsGameOver() {
			return "lost"
		}
		if g.IsCompleted() && !g.IsGameOver() {
			return "won"
		}

		switch g.Phase() {
		case game.PhaseDraw:
			ch, err := g.StartChallenge()
			if err != nil {
				return "error: " + err.Error()
			}
			if ch == nil {
				if err := g.AdvanceStage(); err != nil {
					return "error: " + err.Error()
				}
				continue
			}
			selectCards(g, *ch)
			if _, err := g.ResolveChallenge(); err != nil {
				return "error: " + err.Error()
			}

		case game.PhaseCardSelection:
			pickReward(g)

		case game.PhaseInsuranceTypeSelection:
			pickInsurance(g)

		case game.PhaseResolution:
			res, err := g.NextTurn()
			if err != nil {
				return "error: " + err.Error()
			}
			for _, renewal := range res.PendingRenewals {
				if _, err := g.RenewInsurance(renewal.Card.ID); err != nil {
					break
				}
			}

		default:
			return "error: stuck in phase " + string(g.Phase())
		}
	}
	return "turn cap"
}

// selectCards commits hand cards weakest-first until the committed
// power beats the challenge, or the hand runs out.
func selectCards(g *game.Game, ch card.Card) {
	hand := g.Hand()
	for i := 1; i < len(hand); i++ {
		for j := i; j > 0 && hand[j].EffectivePower(g.Stage()) < hand[j-1].EffectivePower(g.Stage()); j-- {
			hand[j], hand[j-1] = hand[j-1], hand[j]
		}
	}

	selected := []card.Card{}
	for _, c := range hand {
		if challenge.PlayerPower(selected, g.Stage()) > ch.Power.Int() {
			break
		}
		if err := g.ToggleCardSelection(c.ID); err != nil {
			continue
		}
		selected = append(selected, c)
	}
}

func pickReward(g *game.Game) {
	choices := g.CardChoices()
	if len(choices) == 0 {
		return
	}
	best := choices[0]
	for _, c := range choices[1:] {
		if c.EffectivePower(g.Stage()) > best.EffectivePower(g.Stage()) {
			best = c
		}
	}
	_, _ = g.SelectCard(best.ID)
}

func pickInsurance(g *game.Game) {
	choices := g.InsuranceTypeChoices()
	if len(choices) == 0 {
		return
	}
	_, _ = g.SelectInsuranceType(choices[0].Kind, card.DurationTerm)
}
