package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	application "tender-tracker/internal/applicationService"
	award "tender-tracker/internal/awardService"
	"tender-tracker/internal/filestore"
	model "tender-tracker/internal/models"
	"tender-tracker/internal/repository"
	"tender-tracker/internal/server"
	tender "tender-tracker/internal/tenderService"

	"github.com/gin-gonic/gin"
)

// Known actors reused across the API tests.
var (
	issuer  = model.Actor{ID: "issuer1", Role: model.RoleIssuer, Email: "issuer1@acme.test"}
	issuer2 = model.Actor{ID: "issuer2", Role: model.RoleIssuer, Email: "issuer2@acme.test"}
	bidder  = model.Actor{ID: "bidder1", Role: model.RoleBidder, Email: "bidder1@bidders.test"}
	bidder2 = model.Actor{ID: "bidder2", Role: model.RoleBidder, Email: "bidder2@bidders.test"}
	admin   = model.Actor{ID: "admin1", Role: model.RoleAdmin, Email: "admin@acme.test"}
)

// SetupTestRouter initializes the full stack on the in-memory repository and
// returns the router together with the repo for direct state assertions.
func SetupTestRouter(t *testing.T) (*gin.Engine, *repository.MemoryRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewMemoryRepo()
	files, err := filestore.NewDiskStore(t.TempDir(), "http://test.local")
	if err != nil {
		t.Fatalf("failed to create file store: %v", err)
	}

	arbitrator := award.NewArbitrator(repo)
	router := server.SetupRouter(server.Deps{
		Tenders:      tender.NewService(repo),
		Applications: application.NewService(repo, arbitrator),
		Store:        repo,
		Files:        files,
		UploadDir:    t.TempDir(),
	})
	return router, repo
}

// ExecuteRequestAndParse executes an HTTP request as the given actor and
// parses the JSON envelope. A nil actor sends no identity headers.
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url string, actor *model.Actor, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	var err error
	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if actor != nil {
		req.Header.Set("X-User-Id", actor.ID)
		req.Header.Set("X-User-Role", string(actor.Role))
		req.Header.Set("X-User-Email", actor.Email)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}
	return resp, w
}

// data unwraps the "data" field of the response envelope as an object.
func data(t *testing.T, resp map[string]any) map[string]any {
	t.Helper()
	d, ok := resp["data"].(map[string]any)
	if !ok {
		t.Fatalf("response has no data object: %v", resp)
	}
	return d
}

// dataList unwraps the "data" field of the response envelope as a list.
func dataList(t *testing.T, resp map[string]any) []any {
	t.Helper()
	d, ok := resp["data"].([]any)
	if !ok {
		t.Fatalf("response has no data list: %v", resp)
	}
	return d
}
