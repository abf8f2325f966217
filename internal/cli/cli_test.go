package cli

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"os"
	"path/filepath"
	"team-allocation-service/internal/domain"
	"team-allocation-service/internal/repository/inmemory"
	"team-allocation-service/internal/service"
	httptransport "team-allocation-service/internal/transport/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

type testEnviroment struct {
	ctx        context.Context
	server     *httptest.Server
	memberRepo *inmemory.MemberRepo
}

func setup(t *testing.T) testEnviroment {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	storage, _ := inmemory.NewStorage()
	teamRepo := inmemory.NewTeamRepo(storage)
	memberRepo := inmemory.NewMemberRepo(storage)
	registry := prometheus.NewRegistry()

	teamService := service.NewTeamService(teamRepo)
	memberService := service.NewMemberService(memberRepo, logger)
	allocationService := service.NewAllocationService(teamRepo, memberRepo, memberService, logger)
	handler := httptransport.NewHandler(teamService, memberService, allocationService, httptransport.NewMetrics(registry), logger)

	server := httptest.NewServer(handler.RegisterRoutes(registry))
	t.Cleanup(server.Close)

	ctx := context.Background()
	for _, team := range []domain.Team{{ID: "alpha", Name: "Alpha"}, {ID: "beta", Name: "Beta"}} {
		_, err := teamService.CreateTeam(ctx, team)
		require.NoError(t, err)
	}
	for _, member := range []domain.Member{
		{ID: "ada", StudentName: "Ada", Role: domain.RoleDeveloper},
		{ID: "grace", StudentName: "Grace", Role: domain.RoleCoach},
		{ID: "alan", StudentName: "Alan", Role: domain.RoleTutor},
	} {
		_, err := memberService.CreateMember(ctx, member)
		require.NoError(t, err)
	}
	_, err := memberService.Assign(ctx, "ada", "alpha")
	require.NoError(t, err)

	return testEnviroment{ctx: ctx, server: server, memberRepo: memberRepo}
}

func run(t *testing.T, e testEnviroment, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(append([]string{"--api-url", e.server.URL}, args...))
	err := cmd.ExecuteContext(e.ctx)
	return out.String(), err
}

func writeSet(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "set.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func teamOf(t *testing.T, e testEnviroment, id domain.MemberID) string {
	t.Helper()

	member, err := e.memberRepo.MemberByID(e.ctx, id)
	require.NoError(t, err)
	if member.TeamID == nil {
		return ""
	}
	return string(*member.TeamID)
}

func TestTeamsListsEveryTeam(t *testing.T) {
	e := setup(t)

	out, err := run(t, e, "teams")

	require.NoError(t, err)
	assert.Contains(t, out, "alpha")
	assert.Contains(t, out, "Beta")
}

func TestMembersFiltersByTeam(t *testing.T) {
	e := setup(t)

	out, err := run(t, e, "members", "--team", "alpha")

	require.NoError(t, err)
	assert.Contains(t, out, "ada")
	assert.NotContains(t, out, "grace")
}

func TestTransferPrintsYAMLWithMoves(t *testing.T) {
	e := setup(t)

	out, err := run(t, e, "transfer", "--team", "alpha", "--assign", "grace", "--release", "ada")
	require.NoError(t, err)

	var file assignmentFile
	require.NoError(t, yaml.Unmarshal([]byte(out), &file))
	assert.Equal(t, "alpha", file.TeamID)
	assert.Equal(t, []string{"grace"}, file.Assigned)
	assert.ElementsMatch(t, []string{"ada", "alan"}, file.Available)
}

func TestTransferReleaseAllThenAssign(t *testing.T) {
	e := setup(t)

	out, err := run(t, e, "transfer", "--team", "alpha", "--release-all", "--assign", "alan")
	require.NoError(t, err)

	var file assignmentFile
	require.NoError(t, yaml.Unmarshal([]byte(out), &file))
	assert.Equal(t, []string{"alan"}, file.Assigned)
	assert.ElementsMatch(t, []string{"ada", "grace"}, file.Available)
}

func TestTransferAssignAll(t *testing.T) {
	e := setup(t)

	out, err := run(t, e, "transfer", "--team", "alpha", "--assign-all")
	require.NoError(t, err)

	var file assignmentFile
	require.NoError(t, yaml.Unmarshal([]byte(out), &file))
	assert.ElementsMatch(t, []string{"ada", "alan", "grace"}, file.Assigned)
	assert.Empty(t, file.Available)
}

func TestTransferRejectsAssignAllWithReleaseAll(t *testing.T) {
	e := setup(t)

	_, err := run(t, e, "transfer", "--team", "alpha", "--assign-all", "--release-all")

	assert.Error(t, err)
}

func TestTeamShowsMembers(t *testing.T) {
	e := setup(t)

	out, err := run(t, e, "team", "alpha")

	require.NoError(t, err)
	assert.Contains(t, out, "Alpha (alpha)")
	assert.Contains(t, out, "ada")
	assert.NotContains(t, out, "grace")
}

func TestTeamUnknownFails(t *testing.T) {
	e := setup(t)

	_, err := run(t, e, "team", "nowhere")

	assert.Error(t, err)
}

func TestTransferRequiresTeam(t *testing.T) {
	e := setup(t)

	_, err := run(t, e, "transfer")

	assert.Error(t, err)
}

func TestSaveReconcilesMembership(t *testing.T) {
	e := setup(t)
	path := writeSet(t, "team_id: alpha\nassigned: [grace, alan]\n")

	out, err := run(t, e, "save", "--file", path)

	require.NoError(t, err)
	assert.Contains(t, out, "2 to assign, 1 to unassign")
	assert.Equal(t, "", teamOf(t, e, "ada"))
	assert.Equal(t, "alpha", teamOf(t, e, "grace"))
	assert.Equal(t, "alpha", teamOf(t, e, "alan"))
}

func TestSaveDryRunChangesNothing(t *testing.T) {
	e := setup(t)
	path := writeSet(t, "team_id: alpha\nassigned: [grace]\n")

	out, err := run(t, e, "save", "--file", path, "--dry-run")

	require.NoError(t, err)
	assert.Contains(t, out, "+ grace")
	assert.Contains(t, out, "- ada")
	assert.Equal(t, "alpha", teamOf(t, e, "ada"))
	assert.Equal(t, "", teamOf(t, e, "grace"))
}

func TestSaveWithoutChangesIsUpToDate(t *testing.T) {
	e := setup(t)
	path := writeSet(t, "team_id: alpha\nassigned: [ada]\n")

	out, err := run(t, e, "save", "--file", path)

	require.NoError(t, err)
	assert.Contains(t, out, "already up to date")
}

func TestSaveReportsFailedItemsAndKeepsSucceeded(t *testing.T) {
	e := setup(t)
	path := writeSet(t, "team_id: alpha\nassigned: [ada, grace, ghost]\n")

	out, err := run(t, e, "save", "--file", path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 requests failed")
	assert.Contains(t, out, "Failed assign ghost (not_found)")
	assert.Equal(t, "alpha", teamOf(t, e, "grace"))
}

func TestSaveRejectsMismatchedTeam(t *testing.T) {
	e := setup(t)
	path := writeSet(t, "team_id: alpha\nassigned: [grace]\n")

	_, err := run(t, e, "save", "--team", "beta", "--file", path)

	require.Error(t, err)
	assert.Equal(t, "", teamOf(t, e, "grace"))
}

func TestSaveTakesTeamFromFlag(t *testing.T) {
	e := setup(t)
	path := writeSet(t, "assigned: [alan]\n")

	_, err := run(t, e, "save", "--team", "beta", "--file", path)

	require.NoError(t, err)
	assert.Equal(t, "beta", teamOf(t, e, "alan"))
}

func TestReadAssignmentFileRejectsOverlap(t *testing.T) {
	path := writeSet(t, "team_id: alpha\nassigned: [ada]\navailable: [ada]\n")

	_, err := readAssignmentFile(path)

	assert.ErrorContains(t, err, "both assigned and available")
}

func TestAPIURLFromEnvironment(t *testing.T) {
	e := setup(t)
	t.Setenv("ALLOCCTL_API_URL", e.server.URL)

	var out bytes.Buffer
	cmd := NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"teams"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "alpha")
}
