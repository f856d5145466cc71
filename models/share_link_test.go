package models

import (
	"testing"
	"time"
)

func TestShareLink_IsValid(t *testing.T) {
	future := time.Now().Unix() + 3600
	past := time.Now().Unix() - 3600
	tests := []struct {
		name string
		link ShareLink
		want bool
	}{
		{
			name: "active, no bounds",
			link: ShareLink{Active: true},
			want: true,
		},
		{
			name: "inactive",
			link: ShareLink{Active: false},
			want: false,
		},
		{
			name: "future expiry",
			link: ShareLink{Active: true, ExpiresAt: future},
			want: true,
		},
		{
			name: "past expiry",
			link: ShareLink{Active: true, ExpiresAt: past},
			want: false,
		},
		{
			name: "downloads remaining",
			link: ShareLink{Active: true, MaxDownloads: 3, DownloadCount: 2},
			want: true,
		},
		{
			name: "downloads exhausted",
			link: ShareLink{Active: true, MaxDownloads: 3, DownloadCount: 3},
			want: false,
		},
		{
			name: "no download limit",
			link: ShareLink{Active: true, DownloadCount: 1000},
			want: true,
		},
		{
			name: "expired with zero downloads used",
			link: ShareLink{Active: true, ExpiresAt: past, MaxDownloads: 5},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.link.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAccessLevel_Sufficient(t *testing.T) {
	tests := []struct {
		name     string
		granted  AccessLevel
		required AccessLevel
		want     bool
	}{
		{"admin covers read", AccessLevelAdmin, AccessLevelRead, true},
		{"admin covers write", AccessLevelAdmin, AccessLevelWrite, true},
		{"admin covers admin", AccessLevelAdmin, AccessLevelAdmin, true},
		{"write covers read", AccessLevelWrite, AccessLevelRead, true},
		{"write covers write", AccessLevelWrite, AccessLevelWrite, true},
		{"write does not cover admin", AccessLevelWrite, AccessLevelAdmin, false},
		{"read covers read", AccessLevelRead, AccessLevelRead, true},
		{"read does not cover write", AccessLevelRead, AccessLevelWrite, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.granted.Sufficient(tt.required); got != tt.want {
				t.Errorf("Sufficient() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestShareLink_Password(t *testing.T) {
	link := ShareLink{}
	if !link.CheckPassword("anything") {
		t.Error("link without password should accept any password")
	}
	link.SetPassword("s3cret")
	if link.PasswordHash == "s3cret" || link.PasswordHash == "" {
		t.Error("password not stored as a hash")
	}
	if !link.CheckPassword("s3cret") {
		t.Error("correct password rejected")
	}
	if link.CheckPassword("wrong") {
		t.Error("wrong password accepted")
	}
	// Same password, different salt, different hash
	other := ShareLink{}
	other.SetPassword("s3cret")
	if other.PasswordHash == link.PasswordHash {
		t.Error("expected per-link salts to produce different hashes")
	}
}
