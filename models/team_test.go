package models

import (
	"drive/config"
	"drive/db"
	"fmt"
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	config.MYSQL_DSN = ""
	config.SQLITE_FILE = "file::memory:?cache=shared"
	db.Init()
	Init()
	os.Exit(m.Run())
}

var userSeq = 0

func makeUser(t *testing.T) *User {
	t.Helper()
	userSeq++
	user, err := UserCreate(fmt.Sprintf("user%d", userSeq), fmt.Sprintf("user%d@models.test", userSeq), "pass")
	if err != nil {
		t.Fatalf("creating user: %v", err)
	}
	return &user
}

func makeTeam(t *testing.T, name string, members ...*User) *Team {
	t.Helper()
	team := Team{Name: name}
	if err := db.Instance.Create(&team).Error; err != nil {
		t.Fatalf("creating team: %v", err)
	}
	for _, member := range members {
		if err := db.Instance.Create(&TeamUser{TeamID: team.ID, UserID: member.ID}).Error; err != nil {
			t.Fatalf("adding member: %v", err)
		}
	}
	return &team
}

func TestTeamMembership(t *testing.T) {
	member := makeUser(t)
	outsider := makeUser(t)
	first := makeTeam(t, "backend", member)
	second := makeTeam(t, "platform", member)
	makeTeam(t, "frontend", outsider)

	if !IsUserInTeam(member.ID, first.ID) {
		t.Error("member not found in their team")
	}
	if IsUserInTeam(outsider.ID, first.ID) {
		t.Error("outsider reported as team member")
	}

	teams := GetUserTeams(member.ID)
	if len(teams) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(teams))
	}
	found := map[uint64]bool{}
	for _, id := range teams {
		found[id] = true
	}
	if !found[first.ID] || !found[second.ID] {
		t.Errorf("GetUserTeams returned %v, want both %d and %d", teams, first.ID, second.ID)
	}
	if got := GetUserTeams(outsider.ID); len(got) != 1 {
		t.Errorf("expected outsider in 1 team, got %v", got)
	}
}
