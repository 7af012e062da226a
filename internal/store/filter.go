package store

import (
	"net/url"
	"strconv"
	"sync"
)

const defaultMaxPrice = 100

// FilterState はカタログ検索のフィルタ。純粋なローカル状態でリモートは呼ばない。
type FilterState struct {
	mu       sync.Mutex
	category []string
	platform string
	maxPrice float64
	search   string
	players  []string
	language []string
	rating   float64
}

func NewFilterState() *FilterState {
	return &FilterState{maxPrice: defaultMaxPrice}
}

func (f *FilterState) SetCategory(category []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.category = category
}

func (f *FilterState) SetPlatform(platform string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.platform = platform
}

func (f *FilterState) SetMaxPrice(maxPrice float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.maxPrice = maxPrice
}

func (f *FilterState) SetSearch(search string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.search = search
}

func (f *FilterState) SetPlayers(players []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.players = players
}

func (f *FilterState) SetLanguage(language []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.language = language
}

func (f *FilterState) SetRating(rating float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rating = rating
}

// Clear は初期値に戻す。
func (f *FilterState) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.category = nil
	f.platform = ""
	f.maxPrice = defaultMaxPrice
	f.search = ""
	f.players = nil
	f.language = nil
	f.rating = 0
}

// Query は GET /games に渡すクエリ。初期値のままの項目は載せない。
func (f *FilterState) Query() url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()

	q := url.Values{}
	for _, c := range f.category {
		q.Add("category", c)
	}
	if f.platform != "" {
		q.Set("platform", f.platform)
	}
	if f.maxPrice != defaultMaxPrice {
		q.Set("maxPrice", strconv.FormatFloat(f.maxPrice, 'f', -1, 64))
	}
	if f.search != "" {
		q.Set("search", f.search)
	}
	for _, p := range f.players {
		q.Add("players", p)
	}
	for _, l := range f.language {
		q.Add("language", l)
	}
	if f.rating > 0 {
		q.Set("rating", strconv.FormatFloat(f.rating, 'f', -1, 64))
	}
	return q
}
