package catalog

// Shipped item tables. Prices are canonical unit prices and double as the
// default cost basis when a contributor adds stock without naming a price.

var defaultPrices = map[string]int{
	"bud_sojokush": 5000, "bud_khalifakush": 1100, "bud_pineappleexpress": 745,
	"bud_sourdiesel": 645, "bud_whitewidow": 630, "bud_ogkush": 780,
	"bagof_ogkush": 35, "bagof_whitewidow": 40, "bagof_sourdiesel": 40,
	"bagof_pineappleexpress": 43, "bagof_khalifakush": 72, "bagof_sojokush": 325,
	"joint_ogkush": 30, "joint_whitewidow": 30, "joint_sourdiesel": 35,
	"joint_pineappleexpress": 35, "joint_khalifakush": 60, "joint_sojokush": 125,
	"tebex_vinplate": 350000, "tebex_talentreset": 550000, "tebex_deep_pockets": 950000,
	"tebex_crewleadership": 4000000, "licenseplate": 535000, "tebex_carwax": 595000,
	"tebex_xpbooster": 1450000, "tebex_crewname": 2500000, "tebex_crewcolour": 1000000,
	"cookedmackerel": 500, "cookedbass": 500, "cookedgrouper": 500, "cookedsalmon": 500,
	"cookedpike": 750, "catfishnuggets": 500, "cookedyellowfintuna": 500,
	"makeshiftarmour": 2750, "rollingpaper": 20,
}

var defaultLabels = map[string]string{
	"bud_sojokush": "Bizarre Bud", "bud_khalifakush": "Strange Bud",
	"bud_pineappleexpress": "Smelly Bud", "bud_sourdiesel": "Sour Diesel Bud",
	"bud_whitewidow": "Whacky Bud", "bud_ogkush": "Old Bud",
	"bagof_sojokush": "Bizarre Bag", "bagof_khalifakush": "Strange Bag",
	"bagof_pineappleexpress": "Smelly Bag", "bagof_sourdiesel": "Sour Diesel Bag",
	"bagof_whitewidow": "Whacky Bag", "bagof_ogkush": "Old Bag",
	"joint_sojokush": "Bizarre Joint", "joint_khalifakush": "Strange Joint",
	"joint_pineappleexpress": "Smelly Joint", "joint_sourdiesel": "Sour Diesel Joint",
	"joint_whitewidow": "Whacky Joint", "joint_ogkush": "Old Joint",
	"tebex_vinplate": "Stolen Plate", "tebex_talentreset": "Talent Reset",
	"tebex_deep_pockets": "Deep Pockets", "licenseplate": "Custom Plate",
	"tebex_carwax": "Car Wax", "tebex_xpbooster": "XP Booster",
	"tebex_crewleadership": "Crew Leadership", "tebex_crewname": "Crew Name",
	"tebex_crewcolour": "Crew Colour",
	"cookedmackerel": "Cooked Mackerel", "cookedbass": "Cooked Bass",
	"cookedsalmon": "Cooked Salmon", "cookedgrouper": "Cooked Grouper",
	"cookedpike": "Cooked Pike", "catfishnuggets": "Cooked Catfish",
	"cookedyellowfintuna": "Cooked Yellowfin Tuna",
	"makeshiftarmour": "Makeshift Armour", "rollingpaper": "Rolling Paper",
}

var defaultCategories = map[string][]string{
	"bud":   {"bud_ogkush", "bud_whitewidow", "bud_sourdiesel", "bud_pineappleexpress", "bud_khalifakush", "bud_sojokush"},
	"bag":   {"bagof_ogkush", "bagof_whitewidow", "bagof_sourdiesel", "bagof_pineappleexpress", "bagof_khalifakush", "bagof_sojokush"},
	"joint": {"joint_ogkush", "joint_whitewidow", "joint_sourdiesel", "joint_pineappleexpress", "joint_khalifakush", "joint_sojokush"},
	"tebex": {"tebex_vinplate", "tebex_talentreset", "tebex_deep_pockets", "licenseplate", "tebex_carwax", "tebex_xpbooster", "tebex_crewleadership", "tebex_crewname", "tebex_crewcolour"},
	"fish":  {"cookedmackerel", "cookedbass", "cookedsalmon", "cookedgrouper", "cookedpike", "catfishnuggets", "cookedyellowfintuna"},
	"misc":  {"makeshiftarmour", "rollingpaper"},
}

var defaultThresholds = map[string]int{
	"bud": 30, "joint": 100, "bag": 100, "tebex": 10, "fish": 10, "misc": 10,
}
