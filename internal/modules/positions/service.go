package positions

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/investboard/investboard/internal/database"
	"github.com/investboard/investboard/internal/domain"
	"github.com/investboard/investboard/internal/events"
)

// QuoteFeed is the slice of the price feed the position lifecycle
// needs: seeding on create, resetting on update, pruning on removal
// and reading the simulated price at the moment of sale.
type QuoteFeed interface {
	Seed(id string, price float64)
	Reset(id string, price float64)
	Remove(id string)
	PriceOf(id string, fallback float64) float64
}

// Ledger records the buy/sell cash-flow events. The Execer is the
// transaction the service runs the paired store write in, so a failed
// append rolls both back.
type Ledger interface {
	RecordBuy(e database.Execer, p domain.Position) error
	RecordSell(e database.Execer, date string, amount float64) error
}

// PositionInput is the create/update payload from the dashboard
type PositionInput struct {
	Type          string  `json:"type"`
	Symbol        string  `json:"symbol"`
	Quantity      float64 `json:"quantity"`
	PurchasePrice float64 `json:"purchasePrice"`
	PurchaseDate  string  `json:"purchaseDate"`
}

// SaleResult reports a completed sale back to the caller
type SaleResult struct {
	ID         string  `json:"id"`
	SaleAmount float64 `json:"saleAmount"`
	SaleDate   string  `json:"saleDate"`
}

// Service orchestrates the position lifecycle: validation, storage,
// quote seeding and ledger recording. Validation always runs before
// any mutation so a rejected request leaves no partial state.
type Service struct {
	repo   *Repository
	feed   QuoteFeed
	ledger Ledger
	events *events.Manager
	log    zerolog.Logger
}

// NewService creates a new position service
func NewService(repo *Repository, feed QuoteFeed, ledger Ledger, eventManager *events.Manager, log zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		feed:   feed,
		ledger: ledger,
		events: eventManager,
		log:    log.With().Str("service", "positions").Logger(),
	}
}

// Create validates and stores a new position, seeds its quote at the
// purchase price and appends the BUY event.
func (s *Service) Create(input PositionInput) (domain.Position, error) {
	assetType, err := validateInput(input)
	if err != nil {
		return domain.Position{}, err
	}

	p := domain.Position{
		ID:            uuid.NewString(),
		Type:          assetType,
		Symbol:        strings.TrimSpace(input.Symbol),
		Quantity:      input.Quantity,
		PurchasePrice: input.PurchasePrice,
		PurchaseDate:  input.PurchaseDate,
	}

	// One transaction for the position insert and its BUY event, so
	// neither applies without the other.
	tx, err := s.repo.db.Begin()
	if err != nil {
		return domain.Position{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.repo.insert(tx, p); err != nil {
		return domain.Position{}, err
	}
	if err := s.ledger.RecordBuy(tx, p); err != nil {
		return domain.Position{}, fmt.Errorf("failed to record buy event: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return domain.Position{}, fmt.Errorf("failed to commit position create: %w", err)
	}

	s.feed.Seed(p.ID, p.PurchasePrice)

	s.events.Emit(events.PositionCreated, "positions", map[string]interface{}{
		"id":     p.ID,
		"symbol": p.Symbol,
		"type":   p.Type,
	})

	return p, nil
}

// Update replaces a position's fields and re-seeds its quote at the
// new purchase price. Ledger entries are immutable, so the original
// BUY event is left as recorded.
func (s *Service) Update(id string, input PositionInput) (domain.Position, error) {
	assetType, err := validateInput(input)
	if err != nil {
		return domain.Position{}, err
	}

	p := domain.Position{
		ID:            id,
		Type:          assetType,
		Symbol:        strings.TrimSpace(input.Symbol),
		Quantity:      input.Quantity,
		PurchasePrice: input.PurchasePrice,
		PurchaseDate:  input.PurchaseDate,
	}

	if err := s.repo.Update(p); err != nil {
		return domain.Position{}, err
	}

	s.feed.Reset(p.ID, p.PurchasePrice)

	s.events.Emit(events.PositionUpdated, "positions", map[string]interface{}{
		"id":     p.ID,
		"symbol": p.Symbol,
	})

	return p, nil
}

// Delete removes a position and prunes its quote. No ledger event is
// recorded; only a sale produces one.
func (s *Service) Delete(id string) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.feed.Remove(id)

	s.events.Emit(events.PositionDeleted, "positions", map[string]interface{}{
		"id": id,
	})

	return nil
}

// Sell values the position at the current simulated price, removes it
// and appends exactly one SELL event for the gross sale amount.
func (s *Service) Sell(id, saleDate string) (SaleResult, error) {
	p, err := s.repo.GetByID(id)
	if err != nil {
		return SaleResult{}, err
	}

	saleDay, err := domain.ParseDate(saleDate)
	if err != nil {
		return SaleResult{}, domain.NewValidationError("date", "sale date must be a valid YYYY-MM-DD date")
	}
	purchaseDay, err := domain.ParseDate(p.PurchaseDate)
	if err == nil && saleDay.Before(purchaseDay) {
		return SaleResult{}, domain.NewValidationError("date", "sale date must not be earlier than the purchase date")
	}

	// Sales settle at the simulated price, falling back to the
	// purchase price when the quote is missing.
	salePrice := s.feed.PriceOf(id, p.PurchasePrice)
	saleAmount := salePrice * p.Quantity

	// The delete and the SELL event commit together; a failed append
	// leaves the position in place.
	tx, err := s.repo.db.Begin()
	if err != nil {
		return SaleResult{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.repo.remove(tx, id); err != nil {
		return SaleResult{}, err
	}
	if err := s.ledger.RecordSell(tx, saleDate, saleAmount); err != nil {
		return SaleResult{}, fmt.Errorf("failed to record sell event: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return SaleResult{}, fmt.Errorf("failed to commit sale: %w", err)
	}

	s.feed.Remove(id)

	s.events.Emit(events.PositionSold, "positions", map[string]interface{}{
		"id":         id,
		"symbol":     p.Symbol,
		"saleAmount": saleAmount,
		"saleDate":   saleDate,
	})

	return SaleResult{ID: id, SaleAmount: saleAmount, SaleDate: saleDate}, nil
}

// List returns positions projected through the type and symbol
// filters. Both filters are optional; "ALL" and a blank query are
// identities.
func (s *Service) List(assetType, query string) ([]domain.Position, error) {
	if assetType != "" && !strings.EqualFold(assetType, TypeAll) {
		if _, err := domain.ParseAssetType(assetType); err != nil {
			return nil, domain.NewValidationError("type", fmt.Sprintf("invalid asset type: %s", assetType))
		}
	}

	positions, err := s.repo.List()
	if err != nil {
		return nil, err
	}

	return SearchBySymbol(FilterByType(positions, assetType), query), nil
}

// Get returns a single position by id
func (s *Service) Get(id string) (domain.Position, error) {
	return s.repo.GetByID(id)
}

func validateInput(input PositionInput) (domain.AssetType, error) {
	if strings.TrimSpace(input.Symbol) == "" {
		return "", domain.NewValidationError("symbol", "symbol must not be empty")
	}
	if input.Quantity <= 0 {
		return "", domain.NewValidationError("quantity", "quantity must be greater than zero")
	}
	if input.PurchasePrice <= 0 {
		return "", domain.NewValidationError("purchasePrice", "purchase price must be greater than zero")
	}

	assetType, err := domain.ParseAssetType(input.Type)
	if err != nil {
		return "", domain.NewValidationError("type", fmt.Sprintf("invalid asset type: %s", input.Type))
	}

	if _, err := domain.ParseDate(input.PurchaseDate); err != nil {
		return "", domain.NewValidationError("purchaseDate", "purchase date must be a valid YYYY-MM-DD date")
	}

	return assetType, nil
}
