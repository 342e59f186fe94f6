package pages

import "github.com/JonMunkholm/civicdash/internal/core"

// Backend resources, keyed by the dataset key each page reads them under.
var (
	statsResource = core.Resource{Key: "stats", Path: "/stats", Single: true}

	citizensResource = core.Resource{Key: "citizens", Path: "/citizens"}

	electricityBillsResource = core.Resource{Key: "electricity_bills", Path: "/electricity-bills"}
	waterBillsResource       = core.Resource{Key: "water_bills", Path: "/water-bills"}
	electricityUsageResource = core.Resource{Key: "electricity_usage", Path: "/electricity-usage"}
	waterUsageResource       = core.Resource{Key: "water_usage", Path: "/water-usage"}

	routesResource  = core.Resource{Key: "routes", Path: "/routes"}
	busesResource   = core.Resource{Key: "buses", Path: "/buses"}
	driversResource = core.Resource{Key: "drivers", Path: "/drivers"}

	emergencyRequestsResource = core.Resource{Key: "emergency_requests", Path: "/emergency-requests"}
	emergencyServicesResource = core.Resource{Key: "emergency_services", Path: "/emergency-services"}

	wasteZonesResource = core.Resource{Key: "waste_zones", Path: "/waste-collection-zones"}
	trucksResource     = core.Resource{Key: "trucks", Path: "/trucks"}
	wasteLogsResource  = core.Resource{Key: "waste_logs", Path: "/waste-collection-logs"}

	complaintsResource       = core.Resource{Key: "complaints", Path: "/complaints"}
	complaintUpdatesResource = core.Resource{Key: "complaint_updates", Path: "/complaint-updates"}
)
