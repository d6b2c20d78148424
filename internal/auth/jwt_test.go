package auth

import (
	"testing"

	"github.com/rithvisal/inksign/internal/config"
	"github.com/rithvisal/inksign/internal/constant"
)

// Perform token generation and verify the generated tokens to ensure
// VerifyJwtToken is correct
func TestJWT(t *testing.T) {
	jwtService := NewJwt(config.AuthConfig{JWT_SECRET: "test-secret"}, nil)

	payload := JWTPayload{
		ID:        "id1234",
		Email:     "test@gmail.com",
		FirstName: "Test",
		LastName:  "User",
	}

	refreshToken, accessToken, err := jwtService.GenerateRefreshAndAccessToken(payload)
	if err != nil {
		t.Fatalf("An error occurred during refresh token and access token generation. Error: %v", err)
	}

	refreshClaims, err := jwtService.VerifyJwtToken(*refreshToken)
	if err != nil {
		t.Fatalf("An error occurred during refresh token verification. Error: %v", err)
	}
	if refreshClaims.Type != constant.JWT_TYPE_REFRESH {
		t.Errorf("Refresh token type = %q, want %q", refreshClaims.Type, constant.JWT_TYPE_REFRESH)
	}

	accessClaims, err := jwtService.VerifyJwtToken(*accessToken)
	if err != nil {
		t.Fatalf("An error occurred during access token verification. Error: %v", err)
	}
	if accessClaims.Type != constant.JWT_TYPE_ACCESS {
		t.Errorf("Access token type = %q, want %q", accessClaims.Type, constant.JWT_TYPE_ACCESS)
	}
	if accessClaims.User != payload {
		t.Errorf("Access token payload = %+v, want %+v", accessClaims.User, payload)
	}
}

func TestVerifyJwtTokenWrongSecret(t *testing.T) {
	jwtService := NewJwt(config.AuthConfig{JWT_SECRET: "test-secret"}, nil)
	other := NewJwt(config.AuthConfig{JWT_SECRET: "other-secret"}, nil)

	_, accessToken, err := jwtService.GenerateRefreshAndAccessToken(JWTPayload{ID: "id1234"})
	if err != nil {
		t.Fatalf("GenerateRefreshAndAccessToken() error = %v", err)
	}

	if _, err := other.VerifyJwtToken(*accessToken); err == nil {
		t.Error("VerifyJwtToken() with wrong secret should fail")
	}
}
