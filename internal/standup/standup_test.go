package standup

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tartampluch/go-teamroles/internal/config"
	"github.com/tartampluch/go-teamroles/internal/state"
)

func sampleRoles() *state.TeamRoles {
	return &state.TeamRoles{
		StandupManager:     state.Slot{Name: "Ana", ID: "U001"},
		MeetingFacilitator: state.Slot{Name: "Bruno", ID: "U002"},
		SupportSteward: state.StewardState{
			Current:  state.Slot{Name: "Carol", ID: "U003"},
			Incoming: state.Slot{Name: "Dmitri", ID: "U004"},
		},
	}
}

func TestFacilitatorDefinition(t *testing.T) {
	def := FacilitatorDefinition(sampleRoles())

	assert.Equal(t, config.StandupNameFacilitator, def.Name)
	assert.Equal(t, config.StandupDayFacilitator, def.Day)
	assert.Equal(t, []string{"U002", "U001"}, def.UserIDs, "assignee plus standup manager")
	assert.Contains(t, def.Question, "Bruno - it is your turn to facilitate")
}

// TestStewardDefinition: the standup onboards the INCOMING steward and names
// the current one as their buddy.
func TestStewardDefinition(t *testing.T) {
	def := StewardDefinition(sampleRoles())

	assert.Equal(t, config.StandupNameSteward, def.Name)
	assert.Equal(t, []string{"U004", "U001"}, def.UserIDs)
	assert.Contains(t, def.Question, "Dmitri - it is your turn to be the support steward")
	assert.Contains(t, def.Question, "buddy is: Carol")
}

// TestParticipants_ManagerCollapse: when the manager takes the role
// themselves they must not be asked twice.
func TestParticipants_ManagerCollapse(t *testing.T) {
	roles := sampleRoles()
	roles.MeetingFacilitator = roles.StandupManager

	def := FacilitatorDefinition(roles)
	assert.Equal(t, []string{"U001"}, def.UserIDs)
}

// -----------------------------------------------------------------------------
// Sync against a fake Geekbot API
// -----------------------------------------------------------------------------

func testClient(url string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: config.HTTPTimeout},
		baseURL:    url,
		token:      "test-token",
	}
}

func TestSync_CreatesWhenAbsent(t *testing.T) {
	var created map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-token", r.Header.Get(config.HeaderAuth))

		switch {
		case r.Method == http.MethodGet:
			_, _ = w.Write([]byte(`[{"id": 7, "name": "SomeOtherStandup"}]`))
		case r.Method == http.MethodPost:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&created))
			_, _ = w.Write([]byte(`{"id": 42}`))
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	}))
	defer srv.Close()

	def := FacilitatorDefinition(sampleRoles())
	err := testClient(srv.URL).Sync(context.Background(), def)

	require.NoError(t, err)
	require.NotNil(t, created, "a missing standup must be created")
	assert.Equal(t, config.StandupNameFacilitator, created["name"])
	assert.Equal(t, config.StandupChannelFacilitator, created["channel"])
	assert.Equal(t, config.StandupTime, created["time"])
	assert.Equal(t, []any{config.StandupDayFacilitator}, created["days"])
}

func TestSync_PatchesWhenPresent(t *testing.T) {
	var (
		patchedPath string
		patched     map[string]any
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			_, _ = w.Write([]byte(`[{"id": 42, "name": "MeetingFacilitatorStandup"}]`))
		case r.Method == http.MethodPatch:
			patchedPath = r.URL.Path
			require.NoError(t, json.NewDecoder(r.Body).Decode(&patched))
			_, _ = w.Write([]byte(`{"id": 42}`))
		default:
			t.Errorf("unexpected method %s", r.Method)
		}
	}))
	defer srv.Close()

	def := FacilitatorDefinition(sampleRoles())
	err := testClient(srv.URL).Sync(context.Background(), def)

	require.NoError(t, err)
	assert.Equal(t, config.GeekbotStandupsPath+"/42", patchedPath)
	assert.Equal(t, []any{"U002", "U001"}, patched["users"])
	// Schedule fields are creation-only: manual edits in the dashboard
	// must survive a sync.
	assert.NotContains(t, patched, "days")
	assert.NotContains(t, patched, "channel")
}

func TestSync_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	err := testClient(srv.URL).Sync(context.Background(), FacilitatorDefinition(sampleRoles()))
	assert.Error(t, err)
}
