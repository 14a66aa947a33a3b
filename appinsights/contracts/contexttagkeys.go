package contracts

// Tag key constants for every context group in the Application Insights
// wire schema. Reproduced verbatim from the original crate's
// contexttagkeys.rs; spec.md's §3 only calls out operation.parentId as an
// example, but TelemetryContext needs the full surface to be useful.
const (
	TagApplicationVersion = "ai.application.ver"

	TagDeviceID        = "ai.device.id"
	TagDeviceLocale    = "ai.device.locale"
	TagDeviceModel     = "ai.device.model"
	TagDeviceOEMName   = "ai.device.oemName"
	TagDeviceOSVersion = "ai.device.osVersion"
	TagDeviceType      = "ai.device.type"

	TagLocationIP       = "ai.location.ip"
	TagLocationCountry  = "ai.location.country"
	TagLocationProvince = "ai.location.province"
	TagLocationCity     = "ai.location.city"

	TagOperationID                = "ai.operation.id"
	TagOperationName              = "ai.operation.name"
	TagOperationParentID          = "ai.operation.parentId"
	TagOperationSyntheticSource   = "ai.operation.syntheticSource"
	TagOperationCorrelationVector = "ai.operation.correlationVector"

	TagSessionID      = "ai.session.id"
	TagSessionIsFirst = "ai.session.isFirst"

	TagUserAccountID  = "ai.user.accountId"
	TagUserID         = "ai.user.id"
	TagUserAuthUserID = "ai.user.authUserId"

	TagCloudRole         = "ai.cloud.role"
	TagCloudRoleVer      = "ai.cloud.roleVer"
	TagCloudRoleInstance = "ai.cloud.roleInstance"
	TagCloudLocation     = "ai.cloud.location"

	TagInternalSDKVersion    = "ai.internal.sdkVersion"
	TagInternalAgentVersion = "ai.internal.agentVersion"
	TagInternalNodeName      = "ai.internal.nodeName"
)
