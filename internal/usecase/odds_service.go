package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/gridironhq/gridiron-feed/internal/domain/game"
	"github.com/gridironhq/gridiron-feed/internal/domain/odds"
	"github.com/gridironhq/gridiron-feed/internal/normalize"
	"github.com/gridironhq/gridiron-feed/internal/platform/cache"
	"github.com/gridironhq/gridiron-feed/internal/platform/logging"
)

// DefaultOddsHorizon is how far ahead of kickoff pre-match odds are shown.
const DefaultOddsHorizon = 7 * 24 * time.Hour

type OddsService struct {
	fetcher SportsFetcher
	store   *cache.Store
	logger  *logging.Logger
	horizon time.Duration
	now     func() time.Time
}

func NewOddsService(fetcher SportsFetcher, store *cache.Store, logger *logging.Logger, horizon time.Duration) *OddsService {
	if logger == nil {
		logger = logging.Default()
	}
	if horizon <= 0 {
		horizon = DefaultOddsHorizon
	}
	return &OddsService{
		fetcher: fetcher,
		store:   store,
		logger:  logger,
		horizon: horizon,
		now:     time.Now,
	}
}

// QuotesForGame applies the availability policy and, when odds are open,
// returns every bookmaker's quotes for the game. The odds fetch is cached
// by game id alone since one fetch covers all bookmakers and markets.
func (s *OddsService) QuotesForGame(ctx context.Context, g game.Game) ([]odds.Quote, odds.Availability, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OddsService.QuotesForGame")
	defer span.End()

	if availability := preMatchAvailability(g, s.now().UTC(), s.horizon); !availability.Open() {
		return nil, availability, nil
	}

	key := fmt.Sprintf("odds:%d", g.ID)
	value, err := s.store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		raw, fetchErr := s.fetcher.Odds(ctx, g.ID)
		if fetchErr != nil {
			s.logger.WarnContext(ctx, "odds fetch failed, treating as unreleased",
				"game_id", g.ID,
				"error", fetchErr,
			)
			return []odds.Quote{}, nil
		}

		quotes, entryErrs := normalize.BuildQuotes(g.ID, raw)
		for _, entryErr := range entryErrs {
			s.logger.WarnContext(ctx, "odds entry skipped",
				"game_id", g.ID,
				"entry", entryErr.Index,
				"field", entryErr.Diag.Field,
				"reason", entryErr.Diag.Reason,
			)
		}
		return quotes, nil
	})
	if err != nil {
		return nil, odds.Availability{}, err
	}

	quotes, ok := value.([]odds.Quote)
	if !ok {
		return nil, odds.Availability{}, fmt.Errorf("unexpected cached odds type %T", value)
	}
	if len(quotes) == 0 {
		return nil, odds.Availability{Reason: odds.AvailabilityNotYetReleased}, nil
	}

	return quotes, odds.Availability{Reason: odds.AvailabilityOpen}, nil
}

// BookmakerView lists one bookmaker's markets for a game in source order.
func (s *OddsService) BookmakerView(ctx context.Context, g game.Game, bookmaker string) (odds.BookmakerView, odds.Availability, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OddsService.BookmakerView")
	defer span.End()

	if strings.TrimSpace(bookmaker) == "" {
		return odds.BookmakerView{}, odds.Availability{}, fmt.Errorf("%w: bookmaker is required", ErrInvalidInput)
	}

	quotes, availability, err := s.QuotesForGame(ctx, g)
	if err != nil || !availability.Open() {
		return odds.BookmakerView{}, availability, err
	}

	view, found := BuildBookmakerView(g.ID, quotes, bookmaker)
	if !found {
		return odds.BookmakerView{}, availability, fmt.Errorf("%w: bookmaker %q has no quotes for game %d", ErrNotFound, bookmaker, g.ID)
	}
	return view, availability, nil
}

// Comparison builds cross-bookmaker matrices for the selected market, or
// for every quoted market when market is empty.
func (s *OddsService) Comparison(ctx context.Context, g game.Game, market string) ([]odds.ComparisonMatrix, odds.Availability, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OddsService.Comparison")
	defer span.End()

	quotes, availability, err := s.QuotesForGame(ctx, g)
	if err != nil || !availability.Open() {
		return nil, availability, err
	}

	matrices := BuildComparison(g.ID, quotes, market)
	if len(matrices) == 0 && strings.TrimSpace(market) != "" {
		return nil, availability, fmt.Errorf("%w: market %q has no quotes for game %d", ErrNotFound, market, g.ID)
	}
	return matrices, availability, nil
}

// preMatchAvailability applies the policy rules in order: a finished game
// always reports "game finished" no matter what the quote list holds.
func preMatchAvailability(g game.Game, now time.Time, horizon time.Duration) odds.Availability {
	if g.IsFinished() {
		return odds.Availability{Reason: odds.AvailabilityGameFinished}
	}
	if !g.HasKickoff() {
		return odds.Availability{Reason: odds.AvailabilityInvalidDate}
	}
	if g.KickoffAt.UTC().After(now.Add(horizon)) {
		return odds.Availability{Reason: odds.AvailabilityOutsideWindow}
	}
	return odds.Availability{Reason: odds.AvailabilityOpen}
}

// BuildBookmakerView picks one bookmaker's quote by name, matching
// case-insensitively.
func BuildBookmakerView(gameID int64, quotes []odds.Quote, bookmaker string) (odds.BookmakerView, bool) {
	want := strings.ToLower(strings.TrimSpace(bookmaker))
	for _, quote := range quotes {
		if strings.ToLower(strings.TrimSpace(quote.BookmakerName)) != want {
			continue
		}
		return odds.BookmakerView{
			GameID:    gameID,
			Bookmaker: quote.BookmakerName,
			Markets:   quote.Markets,
		}, true
	}
	return odds.BookmakerView{}, false
}

// BuildComparison produces one matrix per selected market. Columns keep
// first-seen bookmaker order; rows are the union of outcome labels across
// bookmakers, sorted lexicographically. A bookmaker that does not quote an
// outcome gets the unavailable sentinel in that cell.
func BuildComparison(gameID int64, quotes []odds.Quote, market string) []odds.ComparisonMatrix {
	want := strings.ToLower(strings.TrimSpace(market))

	marketNames := make([]string, 0, 8)
	seenMarkets := make(map[string]struct{}, 8)
	for _, quote := range quotes {
		for _, m := range quote.Markets {
			lowered := strings.ToLower(m.Name)
			if want != "" && lowered != want {
				continue
			}
			if _, ok := seenMarkets[lowered]; ok {
				continue
			}
			seenMarkets[lowered] = struct{}{}
			marketNames = append(marketNames, m.Name)
		}
	}

	out := make([]odds.ComparisonMatrix, 0, len(marketNames))
	for _, name := range marketNames {
		out = append(out, buildMarketMatrix(gameID, quotes, name))
	}
	return out
}

func buildMarketMatrix(gameID int64, quotes []odds.Quote, market string) odds.ComparisonMatrix {
	lowered := strings.ToLower(market)

	bookmakers := make([]string, 0, len(quotes))
	oddsByBookmaker := make([]map[string]string, 0, len(quotes))
	labelSet := make(map[string]struct{}, 8)

	for _, quote := range quotes {
		var cells map[string]string
		for _, m := range quote.Markets {
			if strings.ToLower(m.Name) != lowered {
				continue
			}
			if cells == nil {
				cells = make(map[string]string, len(m.Outcomes))
			}
			for _, outcome := range m.Outcomes {
				cells[outcome.Label] = outcome.Odd
				labelSet[outcome.Label] = struct{}{}
			}
		}
		if cells == nil {
			continue
		}
		bookmakers = append(bookmakers, quote.BookmakerName)
		oddsByBookmaker = append(oddsByBookmaker, cells)
	}

	labels := make([]string, 0, len(labelSet))
	for label := range labelSet {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	cells := make([][]string, len(labels))
	for i, label := range labels {
		row := make([]string, len(bookmakers))
		for j := range bookmakers {
			if odd, ok := oddsByBookmaker[j][label]; ok {
				row[j] = odd
			} else {
				row[j] = odds.MatrixUnavailable
			}
		}
		cells[i] = row
	}

	return odds.ComparisonMatrix{
		GameID:     gameID,
		Market:     market,
		Outcomes:   labels,
		Bookmakers: bookmakers,
		Cells:      cells,
	}
}
