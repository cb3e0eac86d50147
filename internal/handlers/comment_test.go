package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"blogapi/internal/models"
)

func TestCreateComment(t *testing.T) {
	e := newTestEnv(t)
	user, userTok := e.createUser(t, "user", "user@example.com", "USER")
	post := e.createPost(t, user, models.PostStatusApproved)

	w := e.do(t, http.MethodPost, fmt.Sprintf("/api/comments/%d", post.ID), userTok,
		map[string]string{"body": "nice post"})
	wantStatus(t, w, http.StatusCreated)

	data := dataObject(t, w)
	if data["body"] != "nice post" {
		t.Errorf("unexpected body: %v", data["body"])
	}
	if data["post_id"].(float64) != float64(post.ID) {
		t.Errorf("unexpected post_id: %v", data["post_id"])
	}
}

func TestCreateCommentMissingPost(t *testing.T) {
	e := newTestEnv(t)
	_, userTok := e.createUser(t, "user", "user@example.com", "USER")

	w := e.do(t, http.MethodPost, "/api/comments/9999", userTok, map[string]string{"body": "hi"})
	wantStatus(t, w, http.StatusNotFound)
	wantMessage(t, w, "There is no post with that id")
}

func TestCreateCommentValidation(t *testing.T) {
	e := newTestEnv(t)
	user, userTok := e.createUser(t, "user", "user@example.com", "USER")
	post := e.createPost(t, user, models.PostStatusApproved)

	w := e.do(t, http.MethodPost, fmt.Sprintf("/api/comments/%d", post.ID), userTok, map[string]string{})
	wantStatus(t, w, http.StatusBadRequest)
	wantMessage(t, w, "Body content is required")
}

func TestListComments(t *testing.T) {
	e := newTestEnv(t)
	user, userTok := e.createUser(t, "user", "user@example.com", "USER")
	post := e.createPost(t, user, models.PostStatusApproved)
	commented := e.createComment(t, user, post)
	plain := e.createComment(t, user, post)

	e.createInteraction(t, user, models.InteractionAngry, nil, ptr(commented.ID))

	w := e.do(t, http.MethodGet, "/api/comments", userTok, nil)
	wantStatus(t, w, http.StatusOK)

	comments := dataArray(t, w)
	if len(comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(comments))
	}

	byID := make(map[float64]map[string]any)
	for _, raw := range comments {
		cm := raw.(map[string]any)
		byID[cm["id"].(float64)] = cm
	}

	tallies := byID[float64(commented.ID)]["interactions"].(map[string]any)
	if tallies["ANGRY"].(float64) != 1 {
		t.Errorf("unexpected tallies: %v", tallies)
	}
	empty := byID[float64(plain.ID)]["interactions"].(map[string]any)
	if len(empty) != 0 {
		t.Errorf("expected empty tallies, got %v", empty)
	}
}
