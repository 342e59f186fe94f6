package pages

import "github.com/JonMunkholm/civicdash/internal/core"

func init() {
	registerUtilities()
}

// UtilitiesMetrics summarizes billing and consumption across both utilities.
type UtilitiesMetrics struct {
	ElectricityRevenue float64 // Paid electricity bills
	WaterRevenue       float64 // Paid water bills
	TotalUsage         float64 // kWh plus litres
	PendingBills       int     // Bills of either kind not marked Paid
}

// ComputeUtilitiesMetrics derives the utilities totals.
func ComputeUtilitiesMetrics(ds core.Dataset) UtilitiesMetrics {
	elecBills := ds.Collection(electricityBillsResource.Key)
	waterBills := ds.Collection(waterBillsResource.Key)

	return UtilitiesMetrics{
		ElectricityRevenue: core.SumWhere(elecBills, "amount", "status", "Paid"),
		WaterRevenue:       core.SumWhere(waterBills, "amount", "status", "Paid"),
		TotalUsage: core.Sum(ds.Collection(electricityUsageResource.Key), "units_consumed") +
			core.Sum(ds.Collection(waterUsageResource.Key), "litres_consumed"),
		PendingBills: core.CountWhereNot(elecBills, "status", "Paid") +
			core.CountWhereNot(waterBills, "status", "Paid"),
	}
}

func utilitiesCards(ds core.Dataset) []core.StatCard {
	m := ComputeUtilitiesMetrics(ds)
	return []core.StatCard{
		{Title: "Electricity Revenue", Value: core.FormatLakh(m.ElectricityRevenue), Variant: variantWarning},
		{Title: "Water Revenue", Value: core.FormatLakh(m.WaterRevenue), Variant: variantAccent},
		{Title: "Total Usage", Value: core.FormatThousands(m.TotalUsage), Subtitle: "Combined kWh/L", Variant: variantPrimary},
		{Title: "Pending Bills", Value: itoa(m.PendingBills), Variant: variantDestructive},
	}
}

// billColumns is shared by both bill tables; quantity is units or litres.
func billColumns(quantityKey, quantityHeader string) core.ColumnSet {
	return core.MustColumns(
		core.Column{Key: "bill_id", Header: "Bill ID"},
		core.Column{Key: "account_id", Header: "Account"},
		core.Column{Key: "bill_year", Header: "Year"},
		core.Column{Key: "bill_month", Header: "Month"},
		core.Decimal(quantityKey, quantityHeader, 2, "0.00"),
		core.Currency("amount", "Amount"),
		core.Date("due_date", "Due Date"),
		core.StatusBadge("status", "Status", "unpaid"),
	)
}

func usageColumns(quantityKey, quantityHeader, timeKey, timeHeader string) core.ColumnSet {
	return core.MustColumns(
		core.Column{Key: "usage_id", Header: "ID"},
		core.Column{Key: "account_id", Header: "Account"},
		core.Column{Key: "usage_month", Header: "Year"},
		core.Column{Key: "usage_month_number", Header: "Month"},
		core.Decimal(quantityKey, quantityHeader, 2, "0.00"),
		core.DateTime(timeKey, timeHeader),
	)
}

var (
	electricityBillColumns  = billColumns("units_consumed", "Units (kWh)")
	waterBillColumns        = billColumns("litres_consumed", "Litres")
	electricityUsageColumns = usageColumns("units_consumed", "Units (kWh)", "meter_reading_time", "Reading Time")
	waterUsageColumns       = usageColumns("litres_consumed", "Litres", "recorded_at", "Recorded At")
)

func registerUtilities() {
	core.RegisterPage(core.PageDefinition{
		Info: core.PageInfo{
			Key:      "utilities",
			Title:    "Utilities",
			Subtitle: "Manage electricity and water services",
			Order:    2,
			Icon:     "zap",
		},
		Resources: []core.Resource{
			electricityBillsResource,
			electricityUsageResource,
			waterBillsResource,
			waterUsageResource,
		},
		Summarize: utilitiesCards,
	})

	views := []struct {
		info    core.ViewInfo
		res     core.Resource
		empty   string
		columns core.ColumnSet
	}{
		{core.ViewInfo{Key: "electricity_bills", Label: "Electricity Bills", Order: 1}, electricityBillsResource, "No electricity bills found", electricityBillColumns},
		{core.ViewInfo{Key: "electricity_usage", Label: "Electricity Usage", Order: 2}, electricityUsageResource, "No usage records found", electricityUsageColumns},
		{core.ViewInfo{Key: "water_bills", Label: "Water Bills", Order: 3}, waterBillsResource, "No water bills found", waterBillColumns},
		{core.ViewInfo{Key: "water_usage", Label: "Water Usage", Order: 4}, waterUsageResource, "No usage records found", waterUsageColumns},
	}

	for _, v := range views {
		info := v.info
		info.Page = "utilities"
		columns := v.columns
		core.RegisterView(core.ViewDefinition{
			Info:         info,
			Resource:     v.res.Key,
			EmptyMessage: v.empty,
			Columns:      func(core.Dataset) core.ColumnSet { return columns },
		})
	}
}
