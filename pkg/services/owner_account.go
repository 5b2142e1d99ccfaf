package services

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// OwnerAccount is the identity projection returned by the accounts service
// for a restaurant owner.
type OwnerAccount struct {
	ID               int    `json:"id"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	ManagerName      string `json:"managerName"`
	RestaurantName   string `json:"restaurantName"`
	CompanyAddress   string `json:"companyAddress"`
	TaxCode          string `json:"taxCode"`
	RestaurantStatus string `json:"restaurantStatus"`
	IsApproved       bool   `json:"isApproved"`
	IsActive         bool   `json:"isActive"`
	IsVerified       bool   `json:"isVerified"`
}

// OwnerAccountClient looks up owner identities on the accounts service.
// Lookups are best-effort: transport failures and non-200 responses are
// reported as absence, never as a fatal error for the caller.
type OwnerAccountClient struct {
	baseURL string
	client  *http.Client
}

// NewOwnerAccountClient creates a client against the given base URL.
func NewOwnerAccountClient(baseURL string, timeout time.Duration) *OwnerAccountClient {
	return &OwnerAccountClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// GetOwnerAccount fetches the account for ownerID. Returns nil when the
// account does not exist or the service is unreachable.
func (s *OwnerAccountClient) GetOwnerAccount(ownerID int) *OwnerAccount {
	resp, err := s.client.Get(fmt.Sprintf("%s/internal/accounts/%d", s.baseURL, ownerID))
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var account OwnerAccount
	if err := json.NewDecoder(resp.Body).Decode(&account); err != nil {
		return nil
	}

	return &account
}
