// internal/payment/service/snap_client.go
package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Daftar kanal pembayaran yang ditawarkan ke Snap.
var enabledPayments = []string{
	"credit_card", "bca_va", "bni_va", "bri_va",
	"gopay", "shopeepay", "indomaret", "alfamart",
}

type TransactionDetails struct {
	OrderID     string  `json:"order_id"`
	GrossAmount float64 `json:"gross_amount"`
}

type CustomerDetails struct {
	FirstName string `json:"first_name"`
	Email     string `json:"email"`
}

type ItemDetail struct {
	ID       string  `json:"id"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Name     string  `json:"name"`
}

type SnapRequest struct {
	TransactionDetails TransactionDetails `json:"transaction_details"`
	CustomerDetails    CustomerDetails    `json:"customer_details"`
	ItemDetails        []ItemDetail       `json:"item_details"`
	EnabledPayments    []string           `json:"enabled_payments"`
}

type SnapResponse struct {
	Token       string `json:"token"`
	RedirectURL string `json:"redirect_url"`
}

// SnapClient adalah "kontrak" ke Snap API milik gateway; internal gateway
// diperlakukan sebagai black box di balik HTTPS.
type SnapClient interface {
	CreateTransaction(req SnapRequest) (*SnapResponse, error)
}

type snapClient struct {
	baseURL   string
	serverKey string
	client    *http.Client
}

func NewSnapClient(baseURL, serverKey string) SnapClient {
	return &snapClient{
		baseURL:   baseURL,
		serverKey: serverKey,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *snapClient) CreateTransaction(req SnapRequest) (*SnapResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("gagal serialize request snap: %w", err)
	}

	httpReq, err := http.NewRequest(http.MethodPost, c.baseURL+"/snap/v1/transactions", bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	// Server key sebagai basic auth username, password kosong
	httpReq.SetBasicAuth(c.serverKey, "")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gagal menghubungi gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway mengembalikan error %d", resp.StatusCode)
	}

	var snapResp SnapResponse
	if err := json.NewDecoder(resp.Body).Decode(&snapResp); err != nil {
		return nil, fmt.Errorf("gagal decode respons gateway: %w", err)
	}
	return &snapResp, nil
}
