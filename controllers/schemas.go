package controllers

import "axelmotors/database"

type ErrorResponse struct {
	Error string `json:"error"`
}

type UpsertUserResponse struct {
	Result database.UpsertResult `json:"result"`
	Token  string                `json:"token"`
}

type AdminResponse struct {
	Admin bool `json:"admin"`
}

type DeleteResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}

type OrderPayload struct {
	ID            string  `json:"_id"`
	ToolsID       string  `json:"toolsId"`
	LegacyToolsID string  `json:"tools_id"`
	ToolName      string  `json:"toolName"`
	Email         string  `json:"email"`
	Name          string  `json:"name"`
	Phone         string  `json:"phone"`
	Address       string  `json:"address"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"`
}

type ToolPaymentPayload struct {
	TransactionID string  `json:"transactionID" binding:"required"`
	Amount        float64 `json:"amount" binding:"min=0"`
	Email         string  `json:"email"`
}

type ReviewPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Rating  int    `json:"rating" binding:"min=0,max=5"`
	Comment string `json:"comment" binding:"required"`
}

type PaymentIntentPayload struct {
	Price float64 `json:"price" binding:"required"`
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}
