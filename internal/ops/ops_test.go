package ops

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/quenchwood/blend/internal/config"
	"github.com/quenchwood/blend/internal/db"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.Init(t.TempDir())
	if err != nil {
		t.Fatalf("db.Init() error = %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func testConfig() *config.Config {
	return config.DefaultConfig()
}

// authenticText yields a personal, link-free post. The index varies the
// wording so fixtures do not accidentally share minable phrases.
func authenticText(i int) string {
	return fmt.Sprintf(
		"I struggled with topic %d for months and my first attempt failed badly. "+
			"I learned more from that experience than from any tutorial number %d. "+
			"What would you have tried differently?", i, i)
}

// promoText yields a jargon-heavy, link-heavy post that the community
// punishes. The same coupon phrase recurs so mining has something to find.
func promoText(i int) string {
	return fmt.Sprintf(
		"Leverage our revolutionary scalable platform for best-in-class ROI. "+
			"Use code LAUNCH10 at https://promo.example.com/deal%d and https://promo.example.com/extra%d today.", i, i)
}

// seedCommunity ingests authentic and promotional posts so analysis has a
// clear quartile contrast.
func seedCommunity(t *testing.T, database *sql.DB, community string, authentic, promo int) {
	t.Helper()
	posts := make([]IngestPost, 0, authentic+promo)
	for i := 0; i < authentic; i++ {
		posts = append(posts, IngestPost{
			Text:         authenticText(i),
			Archetype:    "Journey",
			UpvoteRatio:  0.9,
			CommentCount: 20,
			CollectedAt:  int64(1000 + i),
		})
	}
	for i := 0; i < promo; i++ {
		posts = append(posts, IngestPost{
			Text:         promoText(i),
			Archetype:    "ProblemSolution",
			UpvoteRatio:  0.3,
			CommentCount: 1,
			CollectedAt:  int64(2000 + i),
		})
	}
	if _, err := Ingest(context.Background(), database, IngestInput{Community: community, Posts: posts}); err != nil {
		t.Fatalf("Ingest() error = %v", err)
	}
}
