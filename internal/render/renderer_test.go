package render

import (
	"strings"
	"sync"
	"testing"
	"time"

	"CryptoBoard/internal/formatter"
	"CryptoBoard/internal/model"

	"github.com/shopspring/decimal"
)

func fixedClock() time.Time {
	return time.Date(2024, 5, 1, 21, 7, 3, 0, time.UTC)
}

func sample(id, price, mcap, change string) model.MarketSample {
	return model.MarketSample{
		ID:                id,
		PriceUSD:          decimal.RequireFromString(price),
		MarketCapUSD:      decimal.RequireFromString(mcap),
		ChangePercent24Hr: decimal.RequireFromString(change),
	}
}

func TestRender_BitcoinRow(t *testing.T) {
	store := NewStore()
	r := NewRenderer(store, WithClock(fixedClock), WithLocation(time.UTC))

	board := r.Render([]model.MarketSample{sample("bitcoin", "67890.12", "1234000000000", "2.5")})
	if len(board.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(board.Rows))
	}
	row := board.Rows[0]
	if row.Name != "BTC" {
		t.Errorf("expected name BTC, got %s", row.Name)
	}
	if row.MarketCap != "$1.23T" {
		t.Errorf("expected $1.23T, got %s", row.MarketCap)
	}
	if row.Price != "$67890" {
		t.Errorf("expected $67890, got %s", row.Price)
	}
	if row.Change != "▲ 2.50%" || row.ChangeClass != formatter.ClassPositive {
		t.Errorf("unexpected change %q %s", row.Change, row.ChangeClass)
	}
	if row.Icon != "₿" || row.IconClass != "icon-btc" {
		t.Errorf("unexpected icon %q %s", row.Icon, row.IconClass)
	}
	if board.Timestamp != "21:07:03" {
		t.Errorf("expected timestamp 21:07:03, got %s", board.Timestamp)
	}
	if got := store.Board(); len(got.Rows) != 1 || got.Timestamp != board.Timestamp {
		t.Errorf("store not updated: %+v", got)
	}
}

func TestRender_NegativeChange(t *testing.T) {
	r := NewRenderer(NewStore(), WithClock(fixedClock))
	board := r.Render([]model.MarketSample{sample("ethereum", "3456.78", "415000000000", "-3.456")})
	row := board.Rows[0]
	if row.Change != "▼ 3.46%" {
		t.Errorf("expected ▼ 3.46%%, got %q", row.Change)
	}
	if row.ChangeClass != formatter.ClassNegative {
		t.Errorf("expected negative class, got %s", row.ChangeClass)
	}
}

func TestRender_SkipsUnknownAssets(t *testing.T) {
	r := NewRenderer(NewStore(), WithClock(fixedClock))
	board := r.Render([]model.MarketSample{
		sample("solana", "150", "70000000000", "1"),
		sample("dogecoin", "0.1234", "17000000000", "-0.5"),
	})
	if len(board.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(board.Rows))
	}
	if board.Rows[0].ID != "dogecoin" {
		t.Errorf("expected dogecoin row, got %s", board.Rows[0].ID)
	}
	if board.Rows[0].Price != "$0.1234" {
		t.Errorf("expected $0.1234, got %s", board.Rows[0].Price)
	}
}

func TestRender_KeepsProviderOrder(t *testing.T) {
	r := NewRenderer(NewStore(), WithClock(fixedClock))
	board := r.Render([]model.MarketSample{
		sample("tether", "1", "110000000000", "0"),
		sample("bitcoin", "60000", "1200000000000", "1"),
		sample("ripple", "0.5", "27000000000", "2"),
	})
	want := []string{"tether", "bitcoin", "ripple"}
	for i, id := range want {
		if board.Rows[i].ID != id {
			t.Errorf("row %d: expected %s, got %s", i, id, board.Rows[i].ID)
		}
	}
}

func TestRender_ReplacesPreviousBoard(t *testing.T) {
	store := NewStore()
	r := NewRenderer(store, WithClock(fixedClock))
	r.Render([]model.MarketSample{
		sample("bitcoin", "60000", "1200000000000", "1"),
		sample("ethereum", "3000", "360000000000", "1"),
	})
	r.Render([]model.MarketSample{sample("ripple", "0.5", "27000000000", "2")})

	got := store.Board()
	if len(got.Rows) != 1 || got.Rows[0].ID != "ripple" {
		t.Errorf("expected board to be replaced wholesale, got %+v", got.Rows)
	}
}

func TestRender_PublishesBoard(t *testing.T) {
	var mu sync.Mutex
	var published []Board
	r := NewRenderer(NewStore(), WithClock(fixedClock), OnRender(func(b Board) {
		mu.Lock()
		defer mu.Unlock()
		published = append(published, b)
	}))
	r.Render([]model.MarketSample{sample("bitcoin", "60000", "1200000000000", "1")})

	mu.Lock()
	defer mu.Unlock()
	if len(published) != 1 || len(published[0].Rows) != 1 {
		t.Errorf("expected one published board, got %+v", published)
	}
}

func TestStore_BoardReturnsCopy(t *testing.T) {
	store := NewStore()
	store.Replace(Board{Rows: []Row{{ID: "bitcoin"}}, UpdatedAt: fixedClock()})
	b := store.Board()
	b.Rows[0].ID = "changed"
	if store.Board().Rows[0].ID != "bitcoin" {
		t.Error("store mutated through returned board")
	}
	if NewStore().Board().Empty() != true {
		t.Error("fresh store should be empty")
	}
}

func TestTerminal(t *testing.T) {
	r := NewRenderer(NewStore(), WithClock(fixedClock), WithLocation(time.UTC))
	board := r.Build([]model.MarketSample{
		sample("bitcoin", "67890.12", "1234000000000", "2.5"),
		sample("ethereum", "3456.78", "415000000000", "-3.456"),
	})
	out := Terminal(board)
	for _, want := range []string{"BTC", "$1.23T", "$67890", "▲ 2.50%", "▼ 3.46%", "21:07:03"} {
		if !strings.Contains(out, want) {
			t.Errorf("terminal output missing %q:\n%s", want, out)
		}
	}
}
