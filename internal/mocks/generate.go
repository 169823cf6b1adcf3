// Package mocks provides mock implementations for testing the portal API.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// repository interfaces, plus hand-written doubles for the auth ports under
// mocks/auth.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	store := mocks.NewMockProfileStore(ctrl)
//	store.EXPECT().Get(gomock.Any(), "user-1").Return(profile, nil)
package mocks

// Generate mock for ProfileStore interface from internal/ports.
// This creates MockProfileStore with methods for all ProfileStore interface methods:
// Get, Upsert, Delete, ListByRole
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=profile_store_mock.go github.com/researchhub/portal-api/internal/ports ProfileStore
