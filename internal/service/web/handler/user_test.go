package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"testing"
)

func signWebhook(secret, id, timestamp string, body []byte) string {
	key, _ := base64.StdEncoding.DecodeString(secret)
	mac := hmac.New(sha256.New, key)
	fmt.Fprintf(mac, "%s.%s.%s", id, timestamp, body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func TestWebhookSignature(t *testing.T) {
	secret := base64.StdEncoding.EncodeToString([]byte("0123456789abcdef"))
	h := &UserApiHandler{WebhookSecret: "whsec_" + secret}
	body := []byte(`{"type":"user.created","data":{"id":"user_1"}}`)
	sig := signWebhook(secret, "msg_1", "1700000000", body)

	if !h.verifySignature("msg_1", "1700000000", "v1,"+sig, body) {
		t.Fatal("expected valid signature to pass")
	}
	if h.verifySignature("msg_1", "1700000000", "v1,AAAA", body) {
		t.Fatal("expected wrong signature to fail")
	}
	if h.verifySignature("msg_2", "1700000000", "v1,"+sig, body) {
		t.Fatal("expected signature over different id to fail")
	}
	if h.verifySignature("msg_1", "1700000000", "", body) {
		t.Fatal("expected empty signature header to fail")
	}
}

func TestWebhookSignatureMultiple(t *testing.T) {
	secret := base64.StdEncoding.EncodeToString([]byte("0123456789abcdef"))
	h := &UserApiHandler{WebhookSecret: "whsec_" + secret}
	body := []byte(`{}`)
	sig := signWebhook(secret, "msg_1", "1700000000", body)

	// 头部可携带多个以空格分隔的签名，任一匹配即通过。
	header := "v1,AAAA " + "v1," + sig
	if !h.verifySignature("msg_1", "1700000000", header, body) {
		t.Fatal("expected one of multiple signatures to match")
	}
}

func TestWebhookSignatureNoSecret(t *testing.T) {
	h := &UserApiHandler{}
	if !h.verifySignature("msg_1", "1700000000", "v1,whatever", []byte(`{}`)) {
		t.Fatal("expected verification to be skipped without configured secret")
	}
}
