// Package mocks provides mock implementations for testing the driftbox services.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our repository interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockUserRepository(ctrl)
//	mockRepo.EXPECT().GetByID(gomock.Any(), "id").Return(user, nil)
//
// Hand-written doubles for the auth ports (provider, session store, state
// store) live in the auth subpackage.
package mocks

// Generate mock for UserRepository interface from internal/ports.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=user_repository_mock.go github.com/driftbox/driftbox/internal/ports UserRepository

// Generate mock for UploadRepository interface from internal/ports.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=upload_repository_mock.go github.com/driftbox/driftbox/internal/ports UploadRepository

// Generate mock for RapSheetRepository interface from internal/ports.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=rap_sheet_repository_mock.go github.com/driftbox/driftbox/internal/ports RapSheetRepository

// Generate mock for SiteSettingsRepository interface from internal/ports.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=site_settings_repository_mock.go github.com/driftbox/driftbox/internal/ports SiteSettingsRepository
