package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/klydo/finder/internal/domain"
	"github.com/klydo/finder/internal/registry"
)

// fakeSearcher records calls and serves canned matches per pass.
type fakeSearcher struct {
	imageMatches map[string][]domain.Match
	queryMatches map[string][]domain.Match
	queries      []string
	imageCalls   int
	queryCalls   int
	err          error
}

func (f *fakeSearcher) SearchImage(ctx context.Context, imageURL string) ([]domain.Match, error) {
	f.imageCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.imageMatches[imageURL], nil
}

func (f *fakeSearcher) SearchImageWithQuery(ctx context.Context, imageURL, query string) ([]domain.Match, error) {
	f.queryCalls++
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	return f.queryMatches[imageURL], nil
}

func newTestOrchestrator(searcher domain.VisualSearcher) *Orchestrator {
	reg := registry.New()
	extractor := NewExtractor(reg, ExtractorConfig{})
	return NewOrchestrator(searcher, extractor, reg, OrchestratorConfig{SearchDelay: time.Millisecond})
}

func TestRun_Pass1PopulatesResults(t *testing.T) {
	searcher := &fakeSearcher{
		imageMatches: map[string][]domain.Match{
			"img1": {
				{Rank: 1, Title: "Bewakoof Men Navy Hoodie", Link: "https://www.myntra.com/bewakoof/1/buy"},
			},
		},
	}
	o := newTestOrchestrator(searcher)

	products := []domain.Product{
		{StyleID: "S1", Brand: "Bewakoof", Title: "Men Navy Hoodie", ImageURL: "img1"},
	}

	results := o.Run(context.Background(), products)

	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}
	if !results[0].Sites["myntra"].Found() {
		t.Errorf("myntra = %+v, want found", results[0].Sites["myntra"])
	}
	if o.State() != StateDone {
		t.Errorf("state = %v, want Done", o.State())
	}
}

func TestRun_ResultKeySetMatchesAllowedSites(t *testing.T) {
	o := newTestOrchestrator(&fakeSearcher{})

	products := []domain.Product{
		{StyleID: "S1", Brand: "Bewakoof", Title: "Tee", ImageURL: "img"},
		{StyleID: "S2", Brand: "Unknown Brand", Title: "Tee", ImageURL: "img"},
	}

	results := o.Run(context.Background(), products)

	if len(results[0].Sites) != 3 {
		t.Errorf("Bewakoof product has %d sites, want 3", len(results[0].Sites))
	}
	if len(results[1].Sites) != 2 {
		t.Errorf("unknown brand product has %d sites, want 2 (primaries)", len(results[1].Sites))
	}
	for _, result := range results {
		if len(result.Sites) != len(result.AllowedSites) {
			t.Errorf("key set size %d != allowed sites %d", len(result.Sites), len(result.AllowedSites))
		}
	}
}

func TestRun_NoImageSkipsSearch(t *testing.T) {
	searcher := &fakeSearcher{}
	o := newTestOrchestrator(searcher)

	products := []domain.Product{
		{StyleID: "S1", Brand: "Bewakoof", Title: "Tee", ImageURL: ""},
	}

	results := o.Run(context.Background(), products)

	if searcher.imageCalls != 0 || searcher.queryCalls != 0 {
		t.Errorf("provider called %d+%d times for imageless product, want 0",
			searcher.imageCalls, searcher.queryCalls)
	}
	for _, siteKey := range results[0].AllowedSites {
		if results[0].Sites[siteKey].Found() {
			t.Errorf("site %q should remain Not Found", siteKey)
		}
	}
}

func TestRun_ProviderFailureIsNotFatal(t *testing.T) {
	searcher := &fakeSearcher{err: errors.New("boom")}
	o := newTestOrchestrator(searcher)

	products := []domain.Product{
		{StyleID: "S1", Brand: "Bewakoof", Title: "Tee", ImageURL: "img"},
		{StyleID: "S2", Brand: "Bewakoof", Title: "Tee", ImageURL: "img"},
	}

	results := o.Run(context.Background(), products)

	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2 despite provider failure", len(results))
	}
	if o.State() != StateDone {
		t.Errorf("state = %v, want Done", o.State())
	}
}

func TestRun_Pass2OnlyTouchesMissingSites(t *testing.T) {
	pass1URL := "https://www.myntra.com/bewakoof/1/buy"
	pass2Myntra := "https://www.myntra.com/bewakoof/9/buy"
	pass2Bewakoof := "https://www.bewakoof.com/p/mens-navy-oversized-hoodie-102345"

	searcher := &fakeSearcher{
		imageMatches: map[string][]domain.Match{
			"img1": {
				{Rank: 1, Title: "Bewakoof Men Navy Hoodie", Link: pass1URL},
			},
		},
		queryMatches: map[string][]domain.Match{
			"img1": {
				// Pass 2 must not overwrite myntra even with a new URL.
				{Rank: 1, Title: "Bewakoof Men Navy Hoodie", Link: pass2Myntra},
				{Rank: 2, Title: "Men Navy Hoodie", Link: pass2Bewakoof},
			},
		},
	}
	o := newTestOrchestrator(searcher)

	products := []domain.Product{
		{StyleID: "S1", Brand: "Bewakoof", Title: "Men Navy Hoodie", Gender: "Men", Category: "Hoodies", ImageURL: "img1"},
	}

	results := o.Run(context.Background(), products)
	result := results[0]

	if result.Sites["myntra"].URL != pass1URL {
		t.Errorf("myntra = %q, want untouched pass-1 URL %q", result.Sites["myntra"].URL, pass1URL)
	}
	if result.Sites["bewakoof"].URL != pass2Bewakoof {
		t.Errorf("bewakoof = %q, want pass-2 URL %q", result.Sites["bewakoof"].URL, pass2Bewakoof)
	}
}

func TestRun_Pass2SkippedWhenComplete(t *testing.T) {
	searcher := &fakeSearcher{
		imageMatches: map[string][]domain.Match{
			"img1": {
				{Rank: 1, Title: "Brand X Men Navy Hoodie brandx", Link: "https://www.myntra.com/brandx/1/buy"},
				{Rank: 2, Title: "Brand X Men Navy Hoodie brandx", Link: "https://slikk.club/shop/brandx-navy-hoodie"},
			},
		},
	}
	o := newTestOrchestrator(searcher)

	// Unknown brand: allowed sites are just the primaries, both resolved
	// in pass 1.
	products := []domain.Product{
		{StyleID: "S1", Brand: "brandx", Title: "Men Navy Hoodie", ImageURL: "img1"},
	}

	o.Run(context.Background(), products)

	if searcher.queryCalls != 0 {
		t.Errorf("pass 2 ran %d queries for a fully resolved product, want 0", searcher.queryCalls)
	}
}

func TestBuildPass2Query(t *testing.T) {
	cases := []struct {
		name    string
		product domain.Product
		want    string
	}{
		{
			name: "all parts present",
			product: domain.Product{
				Brand: "Bewakoof", Gender: "Men", Category: "Hoodies",
				Title: "Men Navy Oversized Hoodie",
			},
			want: "Bewakoof Men Hoodies navy",
		},
		{
			name: "empty parts omitted",
			product: domain.Product{
				Brand: "Bewakoof", Title: "Plain Tee",
			},
			want: "Bewakoof",
		},
		{
			name: "first color only",
			product: domain.Product{
				Brand: "Sassafras", Gender: "Women", Category: "Dresses",
				Title: "Black and White Floral Dress",
			},
			want: "Sassafras Women Dresses black",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := buildPass2Query(tc.product); got != tc.want {
				t.Errorf("buildPass2Query() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestMatchProduct(t *testing.T) {
	t.Run("returns error without image", func(t *testing.T) {
		o := newTestOrchestrator(&fakeSearcher{})
		_, err := o.MatchProduct(context.Background(), domain.Product{Brand: "Bewakoof"})
		if !errors.Is(err, domain.ErrNoImage) {
			t.Errorf("err = %v, want ErrNoImage", err)
		}
	})

	t.Run("runs both passes for a single product", func(t *testing.T) {
		searcher := &fakeSearcher{
			imageMatches: map[string][]domain.Match{"img": nil},
			queryMatches: map[string][]domain.Match{
				"img": {
					{Rank: 1, Title: "Bewakoof Men Navy Hoodie", Link: "https://www.myntra.com/bewakoof/1/buy"},
				},
			},
		}
		o := newTestOrchestrator(searcher)

		result, err := o.MatchProduct(context.Background(), domain.Product{
			Brand: "Bewakoof", Title: "Men Navy Hoodie", ImageURL: "img",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if searcher.imageCalls != 1 || searcher.queryCalls != 1 {
			t.Errorf("calls = %d image, %d query, want 1 and 1", searcher.imageCalls, searcher.queryCalls)
		}
		if !result.Sites["myntra"].Found() {
			t.Errorf("myntra = %+v, want found via pass 2", result.Sites["myntra"])
		}
	})
}
