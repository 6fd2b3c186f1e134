// internal/controller/campaign_controller.go
package controller

import (
    "encoding/json"
    "net/http"

    "github.com/elecmate/campaign-backend/internal/middleware"
    "github.com/elecmate/campaign-backend/internal/model"
    "github.com/elecmate/campaign-backend/internal/service"
)

// CampaignController serves the single apprentice-campaign action endpoint.
type CampaignController struct {
    CampaignService *service.CampaignService
    HistoryLimit    int
}

// campaignRequest is the tagged union over all supported actions. Which
// fields are required depends on the action; validation happens per case
// before any data access.
type campaignRequest struct {
    Action             string   `json:"action"`
    CampaignType       string   `json:"campaignType"`
    UserID             string   `json:"userId"`
    UserIDs            []string `json:"userIds"`
    TestEmail          string   `json:"testEmail"`
    ManualEmail        string   `json:"manualEmail"`
    RecipientName      string   `json:"recipientName"`
    FeatureKey         string   `json:"featureKey"`
    ContentTitle       string   `json:"contentTitle"`
    ContentDescription string   `json:"contentDescription"`
}

// Handle dispatches one admin campaign action.
func (c *CampaignController) Handle(w http.ResponseWriter, r *http.Request) {
    var req campaignRequest
    if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
        writeError(w, "invalid request body: "+err.Error())
        return
    }

    campaign := model.CampaignType(req.CampaignType)
    params := service.RenderParams{
        FeatureKey:         req.FeatureKey,
        ContentTitle:       req.ContentTitle,
        ContentDescription: req.ContentDescription,
    }
    ctx := r.Context()

    switch req.Action {
    case "get_eligible":
        if req.CampaignType == "" {
            writeError(w, "campaignType is required for get_eligible")
            return
        }
        eligible, err := c.CampaignService.EligibleUsers(campaign)
        if err != nil {
            writeError(w, err.Error())
            return
        }
        writeJSON(w, map[string]any{"eligible": eligible, "count": len(eligible)})

    case "get_stats":
        if req.CampaignType == "" {
            writeError(w, "campaignType is required for get_stats")
            return
        }
        stats, err := c.CampaignService.Stats(campaign)
        if err != nil {
            writeError(w, err.Error())
            return
        }
        writeJSON(w, map[string]any{"stats": stats})

    case "send_single":
        if req.CampaignType == "" || req.UserID == "" {
            writeError(w, "campaignType and userId are required for send_single")
            return
        }
        email, err := c.CampaignService.SendSingle(ctx, campaign, req.UserID, params)
        if err != nil {
            writeError(w, err.Error())
            return
        }
        writeJSON(w, map[string]any{"email": email})

    case "send_bulk":
        if req.CampaignType == "" || len(req.UserIDs) == 0 {
            writeError(w, "campaignType and userIds are required for send_bulk")
            return
        }
        result, err := c.CampaignService.SendBulk(ctx, campaign, req.UserIDs, params)
        if err != nil {
            writeError(w, err.Error())
            return
        }
        writeJSON(w, result)

    case "send_test":
        if req.CampaignType == "" || req.TestEmail == "" {
            writeError(w, "campaignType and testEmail are required for send_test")
            return
        }
        email, err := c.CampaignService.SendTest(ctx, campaign, req.TestEmail, params)
        if err != nil {
            writeError(w, err.Error())
            return
        }
        writeJSON(w, map[string]any{"email": email})

    case "send_manual":
        if req.CampaignType == "" || req.ManualEmail == "" {
            writeError(w, "campaignType and manualEmail are required for send_manual")
            return
        }
        adminID := middleware.AdminID(ctx)
        email, err := c.CampaignService.SendManual(ctx, campaign, req.ManualEmail, req.RecipientName, adminID, params)
        if err != nil {
            writeError(w, err.Error())
            return
        }
        writeJSON(w, map[string]any{"email": email})

    case "get_sent_history":
        if req.CampaignType == "" {
            writeError(w, "campaignType is required for get_sent_history")
            return
        }
        history, err := c.CampaignService.SentHistory(campaign, c.HistoryLimit)
        if err != nil {
            writeError(w, err.Error())
            return
        }
        writeJSON(w, map[string]any{"history": history})

    default:
        writeError(w, "unknown action: "+req.Action)
    }
}

func writeJSON(w http.ResponseWriter, payload any) {
    w.Header().Set("Content-Type", "application/json")
    json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, message string) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(http.StatusBadRequest)
    json.NewEncoder(w).Encode(map[string]string{"error": message})
}
