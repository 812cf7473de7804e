package repository

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	model "tender-tracker/internal/models"
	"tender-tracker/internal/tendererrors"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// newPostgresRepo connects to the database named by TEST_DATABASE_URL, applies
// the migrations and truncates all tables. Skipped when the variable is unset.
func newPostgresRepo(t *testing.T) *PostgresRepo {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	m, err := migrate.New("file://../../migrations", dsn)
	require.NoError(t, err)
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		t.Fatalf("failed to apply migrations: %v", err)
	}

	pool, err := pgxpool.New(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(context.Background(),
		`TRUNCATE applications, tenders, outbox_events, notifications`)
	require.NoError(t, err)
	return NewPostgresRepo(pool)
}

// Test that the award cascade never pulls an application back out of a
// terminal status, even when the withdrawal commits on a connection that
// never takes the tender row lock.
func TestPostgresRepo_AwardApplication_TerminalStatusGuard(t *testing.T) {
	ctx := context.Background()
	future := time.Now().UTC().Add(48 * time.Hour)

	t.Run("withdrawn_application_cannot_be_accepted", func(t *testing.T) {
		repo := newPostgresRepo(t)
		require.NoError(t, repo.CreateTender(ctx, newTender("t1", "owner1", model.TenderActive, future)))
		require.NoError(t, repo.CreateApplication(ctx, newApplication("a1", "t1", "bidder1", model.ApplicationPending)))

		_, err := repo.SetApplicationStatus(ctx, "a1", model.ApplicationWithdrawn, "")
		require.NoError(t, err)

		_, err = repo.AwardApplication(ctx, "a1")
		require.ErrorIs(t, err, tendererrors.ErrNotPending)

		app, err := repo.GetApplication(ctx, "a1")
		require.NoError(t, err)
		require.Equal(t, model.ApplicationWithdrawn, app.Status)

		tender, err := repo.GetTender(ctx, "t1")
		require.NoError(t, err)
		require.Equal(t, model.TenderActive, tender.Status)
	})

	t.Run("concurrent_withdraw_and_award_settle_one_way", func(t *testing.T) {
		repo := newPostgresRepo(t)

		for i := 0; i < 20; i++ {
			tenderID := "t" + string(rune('a'+i))
			appID := "a" + string(rune('a'+i))
			require.NoError(t, repo.CreateTender(ctx, newTender(tenderID, "owner1", model.TenderActive, future)))
			require.NoError(t, repo.CreateApplication(ctx, newApplication(appID, tenderID, "bidder1", model.ApplicationPending)))

			var wg sync.WaitGroup
			var awardErr, withdrawErr error
			wg.Add(2)
			go func() {
				defer wg.Done()
				_, awardErr = repo.AwardApplication(ctx, appID)
			}()
			go func() {
				defer wg.Done()
				_, withdrawErr = repo.SetApplicationStatus(ctx, appID, model.ApplicationWithdrawn, "")
			}()
			wg.Wait()

			app, err := repo.GetApplication(ctx, appID)
			require.NoError(t, err)
			tender, err := repo.GetTender(ctx, tenderID)
			require.NoError(t, err)

			switch app.Status {
			case model.ApplicationAccepted:
				require.NoError(t, awardErr)
				require.ErrorIs(t, withdrawErr, tendererrors.ErrNotPending)
				require.Equal(t, model.TenderArchived, tender.Status)
			case model.ApplicationWithdrawn:
				require.NoError(t, withdrawErr)
				require.ErrorIs(t, awardErr, tendererrors.ErrNotPending)
				require.Equal(t, model.TenderActive, tender.Status)
			default:
				t.Fatalf("application %s left in %q", appID, app.Status)
			}
		}
	})
}
