package inmemory_test

import (
	"context"
	"sync"
	"team-allocation-service/internal/domain"
	"team-allocation-service/internal/repository/inmemory"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnviroment struct {
	ctx        context.Context
	storage    *inmemory.InMemoryStorage
	teamRepo   *inmemory.TeamRepo
	memberRepo *inmemory.MemberRepo
}

func setup() testEnviroment {
	storage, _ := inmemory.NewStorage()

	return testEnviroment{
		ctx:        context.Background(),
		storage:    storage,
		teamRepo:   inmemory.NewTeamRepo(storage),
		memberRepo: inmemory.NewMemberRepo(storage),
	}
}

var (
	teamAlphaID = domain.TeamID("alpha")
	teamBetaID  = domain.TeamID("beta")

	teamAlpha = domain.Team{ID: teamAlphaID, Name: "Alpha"}
	teamBeta  = domain.Team{ID: teamBetaID, Name: "Beta"}

	firstMemberID  = domain.MemberID("m-1")
	secondMemberID = domain.MemberID("m-2")
)

func seed(t *testing.T, e testEnviroment) {
	t.Helper()

	require.NoError(t, e.teamRepo.Create(e.ctx, teamAlpha))
	require.NoError(t, e.teamRepo.Create(e.ctx, teamBeta))
	require.NoError(t, e.memberRepo.Create(e.ctx, domain.Member{ID: firstMemberID, StudentName: "Ada", Role: domain.RoleDeveloper, TeamID: &teamAlphaID}))
	require.NoError(t, e.memberRepo.Create(e.ctx, domain.Member{ID: secondMemberID, StudentName: "Grace", Role: domain.RoleCoach}))
}

func TestFailCreateTeamWhenAlreadyExists(t *testing.T) {
	e := setup()
	require.NoError(t, e.teamRepo.Create(e.ctx, teamAlpha))

	err := e.teamRepo.Create(e.ctx, teamAlpha)
	assert.ErrorIs(t, err, domain.ErrTeamExists)
}

func TestSuccessTeamByIDMaterialisesMembers(t *testing.T) {
	e := setup()
	seed(t, e)

	team, err := e.teamRepo.TeamByID(e.ctx, teamAlphaID)
	require.NoError(t, err)
	assert.Equal(t, "Alpha", team.Name)
	require.Len(t, team.Members, 1)
	assert.Equal(t, firstMemberID, team.Members[0].ID)

	beta, err := e.teamRepo.TeamByID(e.ctx, teamBetaID)
	require.NoError(t, err)
	assert.Empty(t, beta.Members)
}

func TestFailTeamByIDWhenNotFound(t *testing.T) {
	e := setup()

	_, err := e.teamRepo.TeamByID(e.ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSuccessListTeamsSortedByName(t *testing.T) {
	e := setup()
	seed(t, e)

	teams, err := e.teamRepo.List(e.ctx)
	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Equal(t, teamAlphaID, teams[0].ID)
	assert.Equal(t, teamBetaID, teams[1].ID)
}

func TestFailCreateMemberTwice(t *testing.T) {
	e := setup()
	seed(t, e)

	err := e.memberRepo.Create(e.ctx, domain.Member{ID: firstMemberID, Role: domain.RoleTutor})
	assert.ErrorIs(t, err, domain.ErrMemberExists)
}

func TestFailCreateMemberForUnknownTeam(t *testing.T) {
	e := setup()
	ghost := domain.TeamID("ghost")

	err := e.memberRepo.Create(e.ctx, domain.Member{ID: "m-9", Role: domain.RoleTutor, TeamID: &ghost})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSuccessSetTeamMovesMember(t *testing.T) {
	e := setup()
	seed(t, e)

	member, err := e.memberRepo.SetTeam(e.ctx, firstMemberID, &teamBetaID)
	require.NoError(t, err)
	require.NotNil(t, member.TeamID)
	assert.Equal(t, teamBetaID, *member.TeamID)

	alpha, err := e.memberRepo.MembersByTeamID(e.ctx, teamAlphaID)
	require.NoError(t, err)
	assert.Empty(t, alpha)

	beta, err := e.memberRepo.MembersByTeamID(e.ctx, teamBetaID)
	require.NoError(t, err)
	require.Len(t, beta, 1)
	assert.Equal(t, firstMemberID, beta[0].ID)
}

func TestSuccessSetTeamNilDetachesMember(t *testing.T) {
	e := setup()
	seed(t, e)

	member, err := e.memberRepo.SetTeam(e.ctx, firstMemberID, nil)
	require.NoError(t, err)
	assert.Nil(t, member.TeamID)
	assert.Nil(t, e.storage.Members[firstMemberID].TeamID)
}

func TestSuccessDetachFromTeamClearsMatchingTeam(t *testing.T) {
	e := setup()
	seed(t, e)

	member, detached, err := e.memberRepo.DetachFromTeam(e.ctx, firstMemberID, teamAlphaID)
	require.NoError(t, err)
	assert.True(t, detached)
	assert.Nil(t, member.TeamID)
	assert.Nil(t, e.storage.Members[firstMemberID].TeamID)
}

func TestDetachFromTeamLeavesUnassignedMember(t *testing.T) {
	e := setup()
	seed(t, e)

	member, detached, err := e.memberRepo.DetachFromTeam(e.ctx, secondMemberID, teamAlphaID)
	require.NoError(t, err)
	assert.False(t, detached)
	assert.Nil(t, member.TeamID)
}

func TestFailDetachFromTeamWhenInAnotherTeam(t *testing.T) {
	e := setup()
	seed(t, e)

	_, detached, err := e.memberRepo.DetachFromTeam(e.ctx, firstMemberID, teamBetaID)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.False(t, detached)
	assert.Equal(t, teamAlphaID, *e.storage.Members[firstMemberID].TeamID)

	_, _, err = e.memberRepo.DetachFromTeam(e.ctx, "missing", teamAlphaID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFailSetTeamUnknownMemberOrTeam(t *testing.T) {
	e := setup()
	seed(t, e)
	ghost := domain.TeamID("ghost")

	_, err := e.memberRepo.SetTeam(e.ctx, "missing", &teamAlphaID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.memberRepo.SetTeam(e.ctx, secondMemberID, &ghost)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, e.storage.Members[secondMemberID].TeamID)
}

func TestReturnedMembersDoNotAliasStorage(t *testing.T) {
	e := setup()
	seed(t, e)

	member, err := e.memberRepo.MemberByID(e.ctx, firstMemberID)
	require.NoError(t, err)
	*member.TeamID = teamBetaID

	stored := e.storage.Members[firstMemberID]
	assert.Equal(t, teamAlphaID, *stored.TeamID)
}

func TestConcurrentSetTeamIsSafe(t *testing.T) {
	e := setup()
	require.NoError(t, e.teamRepo.Create(e.ctx, teamAlpha))

	for i := 0; i < 50; i++ {
		id := domain.MemberID(string(rune('a'+i%26)) + string(rune('0'+i/26)))
		require.NoError(t, e.memberRepo.Create(e.ctx, domain.Member{ID: id, Role: domain.RoleDeveloper}))
	}

	members, err := e.memberRepo.List(e.ctx)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for _, member := range members {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.memberRepo.SetTeam(e.ctx, member.ID, &teamAlphaID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assigned, err := e.memberRepo.MembersByTeamID(e.ctx, teamAlphaID)
	require.NoError(t, err)
	assert.Len(t, assigned, 50)
}
