package services

import "taxinator/internal/models"

// Operation names for role lookups. The HTTP layer resolves the caller's
// role; the core owns which roles may invoke each operation.
const (
	OpStartJob           = "start_job"
	OpIngestCostBasis    = "ingest_cost_basis"
	OpIngestPersonalInfo = "ingest_personal_info"
	OpIngestTrades       = "ingest_trades"
	OpTransform          = "transform"
	OpReconcile          = "reconcile"
	OpExport             = "export"
	OpReadJob            = "read_job"
	OpLegacyIngest       = "legacy_ingest"
	OpAITranslate        = "ai_translate"
	OpResetStore         = "reset_store"
)

// operationRoles is the authoritative role grant table.
var operationRoles = map[string][]models.UserRole{
	OpStartJob:           {models.RoleBrokerAdmin, models.RoleInternalOps},
	OpIngestCostBasis:    {models.RoleBrokerAdmin, models.RoleAPIClient},
	OpIngestPersonalInfo: {models.RoleBrokerAdmin, models.RoleAPIClient, models.RoleInternalOps},
	OpIngestTrades:       {models.RoleBrokerAdmin, models.RoleAPIClient, models.RoleInternalOps},
	OpTransform:          {models.RoleBrokerAdmin, models.RoleInternalOps, models.RoleTaxEngine},
	OpReconcile:          {models.RoleBrokerAdmin, models.RoleInternalOps},
	OpExport:             {models.RoleBrokerAdmin, models.RoleTaxEngine},
	OpReadJob:            models.AllRoles,
	OpLegacyIngest:       {models.RoleProvider, models.RoleBrokerAdmin, models.RoleAPIClient},
	OpAITranslate:        models.AllRoles,
	OpResetStore:         {models.RoleInternalOps},
}

// RolesFor returns the set of roles permitted to invoke an operation.
func RolesFor(operation string) []models.UserRole {
	return operationRoles[operation]
}
