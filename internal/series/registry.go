package series

import (
	"sort"

	"github.com/indicator-dashboard/internal/domain"
)

// Registry - неизменяемая таблица правил генерации индикаторов
type Registry struct {
	specs map[string]domain.IndicatorSpec
	names []string
}

// NewRegistry строит реестр из набора спецификаций; дубликаты перезаписываются
func NewRegistry(specs []domain.IndicatorSpec) *Registry {
	r := &Registry{specs: make(map[string]domain.IndicatorSpec, len(specs))}
	for _, s := range specs {
		if s.Shock == "" {
			s.Shock = domain.ShockNone
		}
		if _, exists := r.specs[s.Name]; !exists {
			r.names = append(r.names, s.Name)
		}
		r.specs[s.Name] = s
	}
	sort.Strings(r.names)
	return r
}

// DefaultRegistry возвращает реестр встроенных индикаторов
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Lookup ищет правило по имени индикатора
func (r *Registry) Lookup(name string) (domain.IndicatorSpec, bool) {
	s, ok := r.specs[name]
	return s, ok
}

// Names возвращает отсортированный список индикаторов
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len возвращает количество индикаторов
func (r *Registry) Len() int {
	return len(r.names)
}

func uniform(name string, low, high float64) domain.IndicatorSpec {
	return domain.IndicatorSpec{Name: name, Distribution: domain.DistributionUniform, Params: []float64{low, high}}
}

func linear(name string, start, stop float64) domain.IndicatorSpec {
	return domain.IndicatorSpec{Name: name, Distribution: domain.DistributionLinear, Params: []float64{start, stop}}
}

func linearNoise(name string, start, stop, std float64) domain.IndicatorSpec {
	return domain.IndicatorSpec{Name: name, Distribution: domain.DistributionLinearNoise, Params: []float64{start, stop, std}}
}

func normal(name string, mean, std float64) domain.IndicatorSpec {
	return domain.IndicatorSpec{Name: name, Distribution: domain.DistributionNormal, Params: []float64{mean, std}}
}

func randInt(name string, low, high float64) domain.IndicatorSpec {
	return domain.IndicatorSpec{Name: name, Distribution: domain.DistributionRandInt, Params: []float64{low, high}}
}

func choice(name string, options ...float64) domain.IndicatorSpec {
	return domain.IndicatorSpec{Name: name, Distribution: domain.DistributionChoice, Params: options}
}

func withNoise(s domain.IndicatorSpec) domain.IndicatorSpec {
	s.Noise = true
	return s
}

func withShock(s domain.IndicatorSpec, p domain.ShockPolicy) domain.IndicatorSpec {
	s.Shock = p
	return s
}

var defaultRegistry = NewRegistry(builtinSpecs())

func builtinSpecs() []domain.IndicatorSpec {
	up, down := domain.ShockIncrease, domain.ShockDecrease

	return []domain.IndicatorSpec{
		// Macro
		withNoise(linear("GDP", 350, 400)),
		uniform("FDI inflows", 200, 400),
		uniform("Real labor participation rate accounting for reserve duty unpaid leave and open vacancies", 4, 7),
		uniform("10 year bond yield", 0.5, 3),
		uniform("Interest rate", 0.1, 3),
		withNoise(linear("Level of wages", 2000, 3000)),
		uniform("Foreign trade (Import and Export)", -500, 500),
		uniform("Stock market volatility (VIX)", 10, 60),
		uniform("CPI (overall, core)", 0, 5),
		normal("PMI Manufacturing", 55, 2),
		uniform("Loans defaults/Nonperforming loans to total loans", 0, 10),
		uniform("Personal consumption spending and disposable household income", 5, 50),
		uniform("Personal consumption spending by category", 5, 50),
		uniform("Government tax revenue", 100, 200),
		withShock(withNoise(linear("Home Price Index", 300, 600)), up),
		uniform("Consumer confidence index", 50, 150),
		uniform("Sales CAGR of industry leaders", 0, 20),
		uniform("Net working capital and cash reserves as a percentage of turnover", 10, 60),
		uniform("OpEx CAGR of industry leaders", 0, 20),
		randInt("Companies closed", 0, 100),
		uniform("Foreign trade", 100, 200),
		uniform("Ability to work remotely", 0, 10),
		withNoise(linearNoise("Raw material delays", 1, 30, 2)),
		withNoise(linearNoise("Government support program utilization", 50, 20, 2)),
		withShock(withNoise(linear("Companies applied for chapter 11", 10, 100)), up),
		withShock(withNoise(linear("Percentage of foreign labor", 30, 10)), down),

		// Overall economy
		uniform("GDP Growth Rate", 1, 5),
		uniform("Unemployment Rate Trends", 3, 10),
		uniform("Inflation Rate Changes", 0, 4),
		uniform("Consumer Spending Patterns", 200, 500),
		uniform("Foreign Direct Investment Flows", 100, 300),
		uniform("Currency Strength and Exchange Rates", 0.8, 1.2),
		uniform("Interest Rate Fluctuations", 0.5, 2),
		uniform("Economic Policy Impact Assessment", -2, 2),
		withNoise(linear("National Debt Levels", 1000, 1500)),
		normal("Business Confidence Survey Results", 50, 10),

		// Agriculture
		uniform("Soil Moisture Levels", 10, 60),
		uniform("Rainfall Averages vs Historical Data", 0, 200),
		normal("Temperature Anomalies", 20, 5),
		uniform("Greeness Index (NDVI)", 0.3, 0.8),
		choice("Planting and Harvest Dates", 100, 120, 140),
		uniform("Crop Yield Forecasts and Actuals", 1000, 5000),
		uniform("Water Usage Rates", 100, 500),
		uniform("Agricultural Inputs (Seeds, Fertilizer)", 50, 150),
		uniform("Commodity Price and Price Volatility", 20, 100),
		uniform("Export Volumes and Destinations", 50, 300),
		uniform("Food Stock Levels", 100, 500),
		uniform("Labor Availability and Costs", 1000, 5000),
		uniform("Farm Machinery Sales and Utilization Rates", 10, 50),
		uniform("Energy Costs for Farming Operations", 5, 25),
		uniform("Farm Loan Defaults and Support Levels", 1, 10),
		uniform("Agricultural Subsidies and Support Levels", 100, 500),
		uniform("Insurance Claim Rates", 0, 100),

		// Construction
		randInt("Building Permits Issued", 100, 500),
		uniform("Construction Output and Volume", 500, 1500),
		randInt("Housing Starts and Completions", 50, 300),
		choice("Infrastructure Project Pipelines", 10, 20, 30, 40),
		uniform("Material Costs Trends", 100, 200),
		uniform("Construction Equipment Sales", 30, 80),
		uniform("Labor Force Statistics in Construction", 1000, 3000),
		uniform("Construction Loan Interest Rates", 1, 5),
		uniform("Safety Incident Rates and Regulations Compliance", 0, 100),
		withShock(uniform("Default among developers, contractors", 10, 100), up),
		withShock(randInt("Online announcements of delayed projects", 0, 100), up),
		withShock(randInt("Construction work visa application", 50, 500), down),
		withShock(linear("Level of wages by occupation", 3000, 5000), up),
		withShock(uniform("Evacuees housing demand", 100, 1000), up),
		withShock(uniform("Days on market", 30, 180), up),

		// Manufacturing
		linear("Production Output Volume", 500, 1000),
		uniform("Inventory Levels and Turnover Rates", 5, 20),
		uniform("Manufacturing Employment Rates", 1000, 5000),
		uniform("Machine Utilization Rates", 60, 90),
		uniform("Input Costs", 50, 150),
		uniform("Product Demand Forecasts", 100, 500),
		uniform("Export and Import Volumes", 200, 500),
		uniform("Factory Downtime and Efficiency Metrics", 0, 100),
		uniform("Supply Chain Disruption Impacts", -10, 10),
		uniform("Quality Control Metrics", 80, 100),

		// Retail
		randInt("Consumer Foot Traffic Data", 1000, 10000),
		uniform("Sales Volume and Revenue Trends", 500, 2000),
		uniform("Inventory Turnover Rates", 2, 10),
		uniform("E-commerce Penetration and Growth", 0, 100),
		uniform("Retail Price Inflation", 1, 5),
		uniform("Customer Satisfaction and Loyalty Metrics", 50, 100),
		uniform("Brand Value and Market Share", 5, 30),
		uniform("Seasonal Sales Performance", -20, 20),
		uniform("Retail Space Costs", 10, 100),
		uniform("Omnichannel Retail Adoption Rates", 0, 100),

		// Health and social sector
		uniform("Patient Admission Rates", 50, 500),
		uniform("Healthcare Workforce Statistics", 1000, 5000),
		uniform("Medical Equipment Utilization and Sales", 50, 200),
		normal("Healthcare Policy Changes and Impacts", 0, 1),
		withNoise(linear("Public Health Expenditure", 500, 1500)),
		uniform("Pharmaceutical Sales and Innovation Rates", 100, 500),
		uniform("Health Insurance Coverage Rates", 70, 95),
		uniform("Disease Incidence and Prevalence Rates", 0, 100),
		uniform("Telemedicine Adoption Trends", 0, 100),
		uniform("Patient Outcome Statistics", 80, 100),

		// Retail wholesale
		uniform("Wholesale Sales Volumes", 1000, 7000),
		uniform("B2B Customer Satisfaction Indices", 0, 100),
		uniform("Inventory Carrying Costs", 10, 50),
		uniform("Wholesale Market Price Trends", -10, 10),
		uniform("Retailer Demand Forecasts", 100, 500),
		uniform("Distribution Network Efficiency", 75, 95),
		uniform("Vendor Management Effectiveness", 0, 100),
		uniform("Credit Terms and Payment Periods", 30, 90),
		uniform("Return Rates and Processing Costs", 1, 10),
		uniform("Trade Promotion Effectiveness", 0, 100),

		// Education
		uniform("Student Enrollment and Graduation Rates", 50, 500),
		withNoise(linear("Education Funding Levels", 200, 500)),
		uniform("Teacher to Student Ratios", 10, 30),
		uniform("Academic Performance Metrics", 0, 100),
		uniform("Technology Adoption in Classrooms", 0, 100),
		withNoise(linear("Education Infrastructure Investments", 100, 300)),
		uniform("Special Education Program Availability", 0, 100),
		uniform("School Operation Costs", 100, 500),
		uniform("Workforce Skills Gap Analysis", 0, 100),
		uniform("Online Education Engagement Rates", 0, 100),

		// Transportation and storage
		uniform("Freight Volumes and Transport Efficiency", 100, 1000),
		uniform("Logistics Costs Trends", 5, 25),
		normal("Fuel Price Fluctuations and Impact", 1, 0.2),
		choice("Transportation Infrastructure Development", 100, 200, 300),
		uniform("Vehicle Fleet Age and Maintenance Costs", 1, 5),
		uniform("Warehouse Space Availability and Utilization", 50, 200),
		uniform("Carrier Performance Metrics", 75, 100),
		uniform("Regulatory Changes Affecting Transportation", 0, 100),
		uniform("Transportation Safety and Accident Rates", 0, 100),
		uniform("Digitalization of Supply Chain Operations", 0, 100),

		// Shared
		uniform("Economic Growth Rate", 1, 5),
		uniform("Unemployment Rate", 4, 10),
		uniform("Inflation Rate", 0.1, 4),
		uniform("Interest Rates", 0.5, 5),
		uniform("Consumer Confidence", 20, 100),
		uniform("Exchange Rates", 0.8, 1.5),
	}
}
