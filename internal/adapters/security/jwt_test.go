package security

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/atlaslogistics/shipment-tracking/internal/ports"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	signer, err := NewEphemeralJWTSigner("test-key")
	if err != nil {
		t.Fatalf("NewEphemeralJWTSigner: %v", err)
	}

	in := ports.AuthClaims{
		AdminID: "adm_1",
		Email:   "admin@demo.com",
		Name:    "Demo Admin",
		Role:    "SUPER_ADMIN",
	}
	token, err := signer.Sign(in, time.Hour)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	out, err := signer.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if out != in {
		t.Fatalf("claims = %+v, want %+v", out, in)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	signer, err := NewEphemeralJWTSigner("")
	if err != nil {
		t.Fatalf("NewEphemeralJWTSigner: %v", err)
	}

	// Expired well past the 30s verification leeway.
	token, err := signer.Sign(ports.AuthClaims{AdminID: "adm_1"}, -time.Hour)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if _, err := signer.Verify(token); err == nil {
		t.Fatal("expired token verified")
	}
}

func TestVerifyRejectsForeignKey(t *testing.T) {
	signer, err := NewEphemeralJWTSigner("key-a")
	if err != nil {
		t.Fatalf("NewEphemeralJWTSigner: %v", err)
	}
	other, err := NewEphemeralJWTSigner("key-b")
	if err != nil {
		t.Fatalf("NewEphemeralJWTSigner: %v", err)
	}

	token, err := other.Sign(ports.AuthClaims{AdminID: "adm_1"}, time.Hour)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if _, err := signer.Verify(token); err == nil {
		t.Fatal("token signed by a different key verified")
	}
}

func TestVerifyRejectsMissingAdminID(t *testing.T) {
	signer, err := NewEphemeralJWTSigner("")
	if err != nil {
		t.Fatalf("NewEphemeralJWTSigner: %v", err)
	}
	token, err := signer.Sign(ports.AuthClaims{}, time.Hour)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if _, err := signer.Verify(token); err == nil {
		t.Fatal("token without admin_id verified")
	}
}

func TestNewJWTSignerParsesPEMKeys(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	privPEM := pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(key),
	})
	pubDER, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	if err != nil {
		t.Fatalf("MarshalPKIXPublicKey: %v", err)
	}
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pubDER})

	signer, err := NewJWTSigner("static-key", string(privPEM), string(pubPEM))
	if err != nil {
		t.Fatalf("NewJWTSigner: %v", err)
	}
	token, err := signer.Sign(ports.AuthClaims{AdminID: "adm_1"}, time.Hour)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if _, err := signer.Verify(token); err != nil {
		t.Fatalf("Verify: %v", err)
	}

	if _, err := NewJWTSigner("", string(privPEM), string(pubPEM)); err == nil {
		t.Fatal("empty kid accepted")
	}
	if _, err := NewJWTSigner("static-key", "", ""); err == nil {
		t.Fatal("empty keys accepted")
	}
}
