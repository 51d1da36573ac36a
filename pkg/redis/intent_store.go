package redis

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"time"
)

// IntentData holds a pending withdrawal intent awaiting code verification.
// The intent is never persisted to the store proper until confirmed.
type IntentData struct {
	UserID  string `json:"userId"`
	Amount  string `json:"amount"`
	Address string `json:"address"`
	Method  string `json:"method"`
	Code    string `json:"code"`
}

// IntentStore keeps encrypted withdrawal intents in Redis, keyed by an
// opaque challenge ID, with a short TTL.
type IntentStore struct {
	encryptionKey []byte
}

// NewIntentStore creates a new intent store
func NewIntentStore(encryptionKeyHex string) (*IntentStore, error) {
	key, err := hex.DecodeString(encryptionKeyHex)
	if err != nil {
		return nil, errors.New("invalid encryption key hex")
	}
	if len(key) != 32 {
		return nil, errors.New("encryption key must be 32 bytes (64 hex chars)")
	}
	return &IntentStore{encryptionKey: key}, nil
}

// CreateIntent stores an encrypted intent under the challenge ID
func (s *IntentStore) CreateIntent(ctx context.Context, challengeID string, data *IntentData, expiration time.Duration) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	encryptedData, err := s.encrypt(jsonData)
	if err != nil {
		return err
	}

	return Set(ctx, "withdrawal_intent:"+challengeID, encryptedData, expiration)
}

// GetIntent retrieves and decrypts an intent by challenge ID
func (s *IntentStore) GetIntent(ctx context.Context, challengeID string) (*IntentData, error) {
	encryptedDataStr, err := Get(ctx, "withdrawal_intent:"+challengeID)
	if err != nil {
		return nil, err
	}

	decryptedData, err := s.decrypt(encryptedDataStr)
	if err != nil {
		return nil, err
	}

	var data IntentData
	if err := json.Unmarshal(decryptedData, &data); err != nil {
		return nil, err
	}

	return &data, nil
}

// DeleteIntent removes an intent from Redis
func (s *IntentStore) DeleteIntent(ctx context.Context, challengeID string) error {
	return Del(ctx, "withdrawal_intent:"+challengeID)
}

func (s *IntentStore) encrypt(plaintext []byte) (string, error) {
	block, err := aes.NewCipher(s.encryptionKey)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ciphertext := gcm.Seal(nonce, nonce, plaintext, nil)
	return hex.EncodeToString(ciphertext), nil
}

func (s *IntentStore) decrypt(ciphertextHex string) ([]byte, error) {
	ciphertext, err := hex.DecodeString(ciphertextHex)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(s.encryptionKey)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce, ciphertext := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
	return gcm.Open(nil, nonce, ciphertext, nil)
}
