package integrationtests

import (
	"context"
	"net/http"
	"testing"
	"time"

	"tender-tracker/internal/notify"
	"tender-tracker/services/tenders/helpers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func futureDeadline() string {
	return time.Now().UTC().Add(72 * time.Hour).Format(time.RFC3339)
}

func createTenderRequest() helpers.CreateTenderRequest {
	return helpers.CreateTenderRequest{
		Title:        "Office renovation",
		Description:  "Full renovation of the second floor",
		Category:     "construction",
		Deadline:     futureDeadline(),
		CompanyName:  "Acme Ltd",
		ContactEmail: "issuer1@acme.test",
	}
}

func mustCreateTender(t *testing.T, router *gin.Engine) string {
	t.Helper()
	resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/tenders", &issuer, createTenderRequest())
	require.Equal(t, http.StatusCreated, w.Code)
	return data(t, resp)["tender_id"].(string)
}

// Tender CRUD over HTTP
func TestTenderAPI(t *testing.T) {
	t.Run("create_and_read_back", func(t *testing.T) {
		router, _ := SetupTestRouter(t)

		tenderID := mustCreateTender(t, router)

		resp, w := ExecuteRequestAndParse(t, router, http.MethodGet, "/tenders/"+tenderID, nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		got := data(t, resp)
		require.Equal(t, "Office renovation", got["title"])
		require.Equal(t, "active", got["status"])
		require.Equal(t, "issuer1", got["created_by"])

		resp, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/tenders?status=active", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		listing := data(t, resp)
		require.Equal(t, 1.0, listing["total"])
	})

	t.Run("identity_required_for_writes", func(t *testing.T) {
		router, _ := SetupTestRouter(t)

		_, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/tenders", nil, createTenderRequest())
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("bidder_cannot_create", func(t *testing.T) {
		router, _ := SetupTestRouter(t)

		resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/tenders", &bidder, createTenderRequest())
		require.Equal(t, http.StatusForbidden, w.Code)
		require.Equal(t, "forbidden", resp["kind"])
	})

	t.Run("invalid_json_payload", func(t *testing.T) {
		router, _ := SetupTestRouter(t)

		resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/tenders", &issuer, `{title: "missing quotes"}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Equal(t, "invalid request payload", resp["message"])
	})

	t.Run("past_deadline_rejected", func(t *testing.T) {
		router, _ := SetupTestRouter(t)

		req := createTenderRequest()
		req.Deadline = time.Now().UTC().Add(-time.Hour).Format(time.RFC3339)
		_, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/tenders", &issuer, req)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown_tender_is_404", func(t *testing.T) {
		router, _ := SetupTestRouter(t)

		_, w := ExecuteRequestAndParse(t, router, http.MethodGet, "/tenders/no-such", nil, nil)
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("only_the_owner_updates", func(t *testing.T) {
		router, _ := SetupTestRouter(t)
		tenderID := mustCreateTender(t, router)

		newTitle := "Office renovation phase 2"
		_, w := ExecuteRequestAndParse(t, router, http.MethodPut, "/tenders/"+tenderID, &issuer2,
			helpers.UpdateTenderRequest{Title: &newTitle})
		require.Equal(t, http.StatusForbidden, w.Code)

		resp, w := ExecuteRequestAndParse(t, router, http.MethodPut, "/tenders/"+tenderID, &issuer,
			helpers.UpdateTenderRequest{Title: &newTitle})
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, newTitle, data(t, resp)["title"])
	})

	t.Run("owner_deletes", func(t *testing.T) {
		router, _ := SetupTestRouter(t)
		tenderID := mustCreateTender(t, router)

		_, w := ExecuteRequestAndParse(t, router, http.MethodDelete, "/tenders/"+tenderID, &issuer, nil)
		require.Equal(t, http.StatusOK, w.Code)

		_, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/tenders/"+tenderID, nil, nil)
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func submitApplicationRequest(email string) helpers.SubmitApplicationRequest {
	return helpers.SubmitApplicationRequest{
		BidderName: "Builders Inc",
		Email:      email,
		Phone:      "+200000000",
		BidAmount:  "1450.50",
	}
}

// Application submission and the award cascade over HTTP
func TestApplicationAwardAPI(t *testing.T) {
	t.Run("full_award_cascade", func(t *testing.T) {
		router, _ := SetupTestRouter(t)
		tenderID := mustCreateTender(t, router)

		resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/tenders/"+tenderID+"/applications",
			&bidder, submitApplicationRequest("bidder1@bidders.test"))
		require.Equal(t, http.StatusCreated, w.Code)
		winnerID := data(t, resp)["application_id"].(string)

		_, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/tenders/"+tenderID+"/applications",
			&bidder2, submitApplicationRequest("bidder2@bidders.test"))
		require.Equal(t, http.StatusCreated, w.Code)

		// Only the owner sees the tender's applications.
		_, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/tenders/"+tenderID+"/applications", &bidder, nil)
		require.Equal(t, http.StatusForbidden, w.Code)

		resp, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/tenders/"+tenderID+"/applications", &issuer, nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.Len(t, dataList(t, resp), 2)

		// Accept the first application: tender archived, competitor rejected.
		resp, w = ExecuteRequestAndParse(t, router, http.MethodPatch, "/applications/"+winnerID+"/status",
			&issuer, helpers.SetApplicationStatusRequest{Status: "accepted"})
		require.Equal(t, http.StatusOK, w.Code)
		awardData := data(t, resp)
		require.Equal(t, 1.0, awardData["rejected_count"])
		tender := awardData["tender"].(map[string]any)
		require.Equal(t, "archived", tender["status"])

		resp, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/tenders/"+tenderID, nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "archived", data(t, resp)["status"])

		// The archived tender accepts no further applications or edits.
		resp, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/tenders/"+tenderID+"/applications",
			&bidder2, submitApplicationRequest("bidder2@bidders.test"))
		require.Equal(t, http.StatusConflict, w.Code)
		require.Equal(t, "conflict", resp["kind"])

		newTitle := "Too late"
		_, w = ExecuteRequestAndParse(t, router, http.MethodPut, "/tenders/"+tenderID, &issuer,
			helpers.UpdateTenderRequest{Title: &newTitle})
		require.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("second_accept_conflicts", func(t *testing.T) {
		router, _ := SetupTestRouter(t)
		tenderID := mustCreateTender(t, router)

		resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/tenders/"+tenderID+"/applications",
			&bidder, submitApplicationRequest("bidder1@bidders.test"))
		require.Equal(t, http.StatusCreated, w.Code)
		firstID := data(t, resp)["application_id"].(string)

		resp, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/tenders/"+tenderID+"/applications",
			&bidder2, submitApplicationRequest("bidder2@bidders.test"))
		require.Equal(t, http.StatusCreated, w.Code)
		secondID := data(t, resp)["application_id"].(string)

		_, w = ExecuteRequestAndParse(t, router, http.MethodPatch, "/applications/"+firstID+"/status",
			&issuer, helpers.SetApplicationStatusRequest{Status: "accepted"})
		require.Equal(t, http.StatusOK, w.Code)

		_, w = ExecuteRequestAndParse(t, router, http.MethodPatch, "/applications/"+secondID+"/status",
			&issuer, helpers.SetApplicationStatusRequest{Status: "accepted"})
		require.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("reject_with_comment", func(t *testing.T) {
		router, _ := SetupTestRouter(t)
		tenderID := mustCreateTender(t, router)

		resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/tenders/"+tenderID+"/applications",
			&bidder, submitApplicationRequest("bidder1@bidders.test"))
		require.Equal(t, http.StatusCreated, w.Code)
		appID := data(t, resp)["application_id"].(string)

		resp, w = ExecuteRequestAndParse(t, router, http.MethodPatch, "/applications/"+appID+"/status",
			&issuer, helpers.SetApplicationStatusRequest{Status: "rejected", Comment: "budget mismatch"})
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "rejected", data(t, resp)["status"])
		require.Equal(t, "budget mismatch", data(t, resp)["comment"])

		// Tender stays active after a plain rejection.
		resp, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/tenders/"+tenderID, nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "active", data(t, resp)["status"])
	})

	t.Run("bad_bid_amount_rejected", func(t *testing.T) {
		router, _ := SetupTestRouter(t)
		tenderID := mustCreateTender(t, router)

		req := submitApplicationRequest("bidder1@bidders.test")
		req.BidAmount = "NaN"
		_, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/tenders/"+tenderID+"/applications", &bidder, req)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// Withdrawal over HTTP
func TestWithdrawAPI(t *testing.T) {
	router, _ := SetupTestRouter(t)
	tenderID := mustCreateTender(t, router)

	resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/tenders/"+tenderID+"/applications",
		&bidder, submitApplicationRequest("bidder1@bidders.test"))
	require.Equal(t, http.StatusCreated, w.Code)
	appID := data(t, resp)["application_id"].(string)

	// A different bidder may not withdraw it.
	_, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/applications/"+appID+"/withdraw", &bidder2, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	resp, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/applications/"+appID+"/withdraw", &bidder, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "withdrawn", data(t, resp)["status"])

	// Withdrawn is terminal.
	_, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/applications/"+appID+"/withdraw", &bidder, nil)
	require.Equal(t, http.StatusConflict, w.Code)
}

// Notifications end to end: committed events drained into the in-app feed
func TestNotificationsAPI(t *testing.T) {
	router, repo := SetupTestRouter(t)
	tenderID := mustCreateTender(t, router)

	resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/tenders/"+tenderID+"/applications",
		&bidder, submitApplicationRequest("bidder1@bidders.test"))
	require.Equal(t, http.StatusCreated, w.Code)
	appID := data(t, resp)["application_id"].(string)

	_, w = ExecuteRequestAndParse(t, router, http.MethodPatch, "/applications/"+appID+"/status",
		&issuer, helpers.SetApplicationStatusRequest{Status: "accepted"})
	require.Equal(t, http.StatusOK, w.Code)

	// Drain the queued events into the in-app feed.
	dispatcher := notify.NewDispatcher(repo, notify.NewInApp(repo), time.Second, 3)
	_, err := dispatcher.DrainOnce(context.Background())
	require.NoError(t, err)

	// The winning bidder sees the acceptance.
	resp, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/notifications", &bidder, nil)
	require.Equal(t, http.StatusOK, w.Code)
	feed := dataList(t, resp)
	require.NotEmpty(t, feed)
	titles := make([]string, 0, len(feed))
	for _, item := range feed {
		titles = append(titles, item.(map[string]any)["title"].(string))
	}
	require.Contains(t, titles, "Application Accepted")

	// Mark everything read, then clear.
	_, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/notifications/read-all", &bidder, nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/notifications", &bidder, nil)
	require.Equal(t, http.StatusOK, w.Code)
	for _, item := range dataList(t, resp) {
		require.True(t, item.(map[string]any)["is_read"].(bool))
	}

	_, w = ExecuteRequestAndParse(t, router, http.MethodDelete, "/notifications", &bidder, nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/notifications", &bidder, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, dataList(t, resp))
}
