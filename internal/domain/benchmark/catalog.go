package benchmark

// DefaultCatalog returns the fixed seeded taxonomy. Aliases cover the common
// spellings and languages seen in uploaded reports; the list is not meant to
// be exhaustive, since unresolved names pass through for audit anyway.
// Ranges follow the same expression grammar the range parser consumes.
func DefaultCatalog() []*Definition {
	return []*Definition{
		{
			CanonicalName: "Glucose",
			Category:      "metabolic",
			Aliases:       []string{"glucose", "fasting glucose", "blood glucose", "glucosa", "glucosa en ayunas", "glycémie", "glykämie", "blutzucker", "glicose", "glicemia", "glu"},
			Units:         []string{"mg/dL", "mmol/L"},
			MaleRange:     "70-99 mg/dL (3.9-5.5 mmol/L)",
		},
		{
			CanonicalName: "HbA1c",
			Category:      "metabolic",
			Aliases:       []string{"hba1c", "hemoglobin a1c", "glycated hemoglobin", "glycosylated hemoglobin", "hemoglobina glicosilada", "hémoglobine glyquée", "a1c"},
			Units:         []string{"%"},
			MaleRange:     "4.0-5.6 %",
		},
		{
			CanonicalName: "Hemoglobin",
			Category:      "hematology",
			Aliases:       []string{"hemoglobin", "haemoglobin", "hemoglobina", "hémoglobine", "hämoglobin", "hgb", "hb"},
			Units:         []string{"g/dL", "g/L"},
			MaleRange:     "13.5-17.5 g/dL",
			FemaleRange:   "12.0-15.5 g/dL",
		},
		{
			CanonicalName: "Hematocrit",
			Category:      "hematology",
			Aliases:       []string{"hematocrit", "haematocrit", "hematocrito", "hématocrite", "hämatokrit", "hct", "packed cell volume", "pcv"},
			Units:         []string{"%"},
			MaleRange:     "38.8-50.0 %",
			FemaleRange:   "34.9-44.5 %",
		},
		{
			CanonicalName: "Red Blood Cell Count",
			Category:      "hematology",
			Aliases:       []string{"red blood cell count", "red blood cells", "erythrocytes", "eritrocitos", "érythrocytes", "erythrozyten", "hematies", "rbc"},
			Units:         []string{"×10⁶/µL"},
			MaleRange:     "4.5-5.9 ×10⁶/µL",
			FemaleRange:   "4.0-5.2 ×10⁶/µL",
		},
		{
			CanonicalName: "White Blood Cell Count",
			Category:      "hematology",
			Aliases:       []string{"white blood cell count", "white blood cells", "leukocytes", "leucocytes", "leucocitos", "leukozyten", "wbc"},
			Units:         []string{"×10³/µL"},
			MaleRange:     "4.5-11.0 ×10³/µL",
		},
		{
			CanonicalName: "Platelet Count",
			Category:      "hematology",
			Aliases:       []string{"platelet count", "platelets", "thrombocytes", "plaquetas", "plaquettes", "thrombozyten", "plt"},
			Units:         []string{"×10³/µL"},
			MaleRange:     "150-400 ×10³/µL",
		},
		{
			CanonicalName: "Total Cholesterol",
			Category:      "lipids",
			Aliases:       []string{"total cholesterol", "cholesterol", "colesterol total", "cholestérol total", "gesamtcholesterin", "colesterolo totale"},
			Units:         []string{"mg/dL", "mmol/L"},
			MaleRange:     "< 200 mg/dL",
		},
		{
			CanonicalName: "LDL Cholesterol",
			Category:      "lipids",
			Aliases:       []string{"ldl cholesterol", "ldl", "ldl-c", "colesterol ldl", "cholestérol ldl", "low density lipoprotein"},
			Units:         []string{"mg/dL", "mmol/L"},
			MaleRange:     "< 100 mg/dL",
		},
		{
			CanonicalName: "HDL Cholesterol",
			Category:      "lipids",
			Aliases:       []string{"hdl cholesterol", "hdl", "hdl-c", "colesterol hdl", "cholestérol hdl", "high density lipoprotein"},
			Units:         []string{"mg/dL", "mmol/L"},
			MaleRange:     "> 40 mg/dL",
			FemaleRange:   "> 50 mg/dL",
		},
		{
			CanonicalName: "Triglycerides",
			Category:      "lipids",
			Aliases:       []string{"triglycerides", "trigliceridos", "triglycérides", "triglyceride", "trigliceridi", "tg"},
			Units:         []string{"mg/dL", "mmol/L"},
			MaleRange:     "< 150 mg/dL",
		},
		{
			CanonicalName: "TSH",
			Category:      "thyroid",
			Aliases:       []string{"tsh", "thyroid stimulating hormone", "thyrotropin", "tirotropina", "thyréostimuline", "hormona estimulante de la tiroides"},
			Units:         []string{"mIU/L", "µIU/mL"},
			MaleRange:     "0.4-4.0 mIU/L",
		},
		{
			CanonicalName: "Free T3",
			Category:      "thyroid",
			Aliases:       []string{"free t3", "ft3", "free triiodothyronine", "t3 libre", "t3 livre", "freies t3"},
			Units:         []string{"pg/mL"},
			MaleRange:     "2.3-4.2 pg/mL",
		},
		{
			CanonicalName: "Free T4",
			Category:      "thyroid",
			Aliases:       []string{"free t4", "ft4", "free thyroxine", "t4 libre", "t4 livre", "freies t4", "tiroxina libre"},
			Units:         []string{"ng/dL"},
			MaleRange:     "0.8-1.8 ng/dL",
		},
		{
			CanonicalName: "Vitamin D",
			Category:      "vitamins",
			Aliases:       []string{"vitamin d", "25-oh vitamin d", "25-hydroxyvitamin d", "vitamina d", "vitamine d", "calcidiol", "25(oh)d"},
			Units:         []string{"ng/mL", "nmol/L"},
			MaleRange:     "30-100 ng/mL (75-250 nmol/L)",
		},
		{
			CanonicalName: "Vitamin B12",
			Category:      "vitamins",
			Aliases:       []string{"vitamin b12", "vitamina b12", "vitamine b12", "cobalamin", "cobalamina", "b12"},
			Units:         []string{"pg/mL", "pmol/L"},
			MaleRange:     "200-900 pg/mL",
		},
		{
			CanonicalName: "Ferritin",
			Category:      "iron",
			Aliases:       []string{"ferritin", "ferritina", "ferritine", "serum ferritin"},
			Units:         []string{"ng/mL"},
			MaleRange:     "30-400 ng/mL",
			FemaleRange:   "15-150 ng/mL",
		},
		{
			CanonicalName: "Iron",
			Category:      "iron",
			Aliases:       []string{"iron", "serum iron", "hierro", "fer", "fer sérique", "eisen", "ferro", "fe"},
			Units:         []string{"µg/dL"},
			MaleRange:     "65-175 µg/dL",
			FemaleRange:   "50-170 µg/dL",
		},
		{
			CanonicalName: "Creatinine",
			Category:      "kidney",
			Aliases:       []string{"creatinine", "creatinina", "créatinine", "kreatinin", "crea"},
			Units:         []string{"mg/dL", "µmol/L"},
			MaleRange:     "0.7-1.3 mg/dL",
			FemaleRange:   "0.6-1.1 mg/dL",
		},
		{
			CanonicalName: "Uric Acid",
			Category:      "kidney",
			Aliases:       []string{"uric acid", "acido urico", "acide urique", "harnsäure", "urate"},
			Units:         []string{"mg/dL"},
			MaleRange:     "3.4-7.0 mg/dL",
			FemaleRange:   "2.4-6.0 mg/dL",
		},
		{
			CanonicalName: "ALT",
			Category:      "liver",
			Aliases:       []string{"alt", "alanine aminotransferase", "alanine transaminase", "sgpt", "gpt", "alanina aminotransferasa", "tgp"},
			Units:         []string{"U/L"},
			MaleRange:     "< 41 U/L",
			FemaleRange:   "< 33 U/L",
		},
		{
			CanonicalName: "AST",
			Category:      "liver",
			Aliases:       []string{"ast", "aspartate aminotransferase", "aspartate transaminase", "sgot", "got", "aspartato aminotransferasa", "tgo"},
			Units:         []string{"U/L"},
			MaleRange:     "< 40 U/L",
			FemaleRange:   "< 32 U/L",
		},
		{
			CanonicalName: "Sodium",
			Category:      "electrolytes",
			Aliases:       []string{"sodium", "sodio", "natrium", "na"},
			Units:         []string{"mmol/L"},
			MaleRange:     "135-145 mmol/L",
		},
		{
			CanonicalName: "Potassium",
			Category:      "electrolytes",
			Aliases:       []string{"potassium", "potasio", "kalium", "k"},
			Units:         []string{"mmol/L"},
			MaleRange:     "3.5-5.1 mmol/L",
		},
		{
			CanonicalName: "Calcium",
			Category:      "electrolytes",
			Aliases:       []string{"calcium", "calcio", "kalzium", "ca"},
			Units:         []string{"mg/dL", "mmol/L"},
			MaleRange:     "8.6-10.3 mg/dL",
		},
		{
			CanonicalName: "CRP",
			Category:      "inflammation",
			Aliases:       []string{"crp", "c-reactive protein", "c reactive protein", "proteina c reactiva", "protéine c réactive", "pcr"},
			Units:         []string{"mg/L"},
			MaleRange:     "< 5 mg/L",
		},
		{
			CanonicalName: "Testosterone",
			Category:      "hormones",
			Aliases:       []string{"testosterone", "total testosterone", "testosterona", "testostérone"},
			Units:         []string{"ng/dL"},
			MaleRange:     "300-1000 ng/dL",
			FemaleRange:   "15-70 ng/dL",
		},
	}
}
