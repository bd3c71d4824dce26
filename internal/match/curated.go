// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"fmt"
	"os"

	"go.yaml.in/yaml/v3"
)

// Curated bundles the hand-maintained matcher inputs: subcategories whose
// fuzzy matches are known to mislead, and subcategories assigned outright.
type Curated struct {
	// SkipSubcategories lists ICD-9 subcategory names that fuzzy-match
	// into the wrong ICD-10 blocks; their codes go straight to
	// description matching.
	SkipSubcategories []string `yaml:"skip_subcategories"`

	// ManualSubcategories maps an ICD-9 subcategory directly to its
	// reviewed ICD-10 subcategory.
	ManualSubcategories map[string]string `yaml:"manual_subcategories"`
}

// DefaultCurated returns the shipped curated tables from the calibration
// review. Entries mirror the parsed subcategory text exactly, spelling
// quirks included; the lookup is literal.
func DefaultCurated() *Curated {
	return &Curated{
		SkipSubcategories: []string{
			"poliomyelitis and other non-arthropod borne viral diseases of central nervous system",
			"other diseases due to viruses and chlamydiae",
			"rickettsiosis and other arthropod-borne diseases",
			"syphilis and other venereal diseases",
			"other infectious and parasitic diseases",
			"malignant neoplasm of bone, connective tissue, skin and breast",
			"malignant neoplasm of genitourinary organs",
			"benign neoplasm",
			"other metabolic disorders and immunity disorders",
			"diseases of blood and blood forming organs",
			"organic psychotic conditions",
			"other psychoses",
			"neurotic disorders, personality disorders and other nonpsychotic mental disorders",
			"mental retardation",
			"hereditary and degenerative diseases of central nervous system",
			"disorders of the eye and adnexa",
			"disorders of ear and mastoid process",
			"diseases of veins and lymphatics, and other diseaseas of circulatory system",
			"chronic obstructive pulmonary disease and allied conditions",
			"other diseases of intestines and peritoneum",
			"nephritis, nephrotic syndrome ans nephrosis",
			"complications mainly related to pregnancy",
			"normal delivery and other indications for care in pregnancy labour and delivery",
			"other inflammatory conditions of skin and subcutaneous tissue",
			"other diseases of skin and subcutaneous tissue",
			"arthropathies and related disorders",
			"rheumatism, excluding the back",
			"osteopathies, chondropathies and ac quired musculoskeletal deformities",
			"congenital anomalies",
			"certain conditions originating in the perinatal period",
			"symptoms",
			"non-specific abnormal findings",
			"fracture of upper limb",
			"fracture of lower limb",
			"dislocation",
			"sprains and strains of joints and adjacent muscles",
			"open wound of head, neck and trunk",
			"open wounds of upper limb",
			"open wounds of lower limb",
			"injury to blood vessels",
			"late effects of injuries, poisonings, toxic effects and other external causes",
			"superficial injury",
			"contusion with intact skin surface",
			"crushing injury",
			"injury to nerves and spinal cord",
			"certain traumatic complications and unpspecified injuries",
			"healthy liveborn infants according to type of birth",
			"persons with conditions influencing their health status",
			"persons without reported diagnosis encountered during examination and investigation of individals and populations",
			"additional diagnostic codes",
		},
		ManualSubcategories: map[string]string{
			"arthropod-borne viral diseases":                           "arthropod-borne viral fevers and viral haemorrhagic fevers",
			"viral diseases accompanied by exanthem":                   "viral infections characterized by skin and mucous membrane lesions",
			"carcinoma in situ":                                        "in situ neoplasms",
			"neoplasms of unspecified nature":                          "neoplasms of unspecified behavior",
			"appendicitis":                                             "diseases of appendix",
			"hernia of abdominal cavity":                               "hernia",
			"ill-defined and unknown causes of morbidity and morality": "ill-defined and unknown cause of mortality",
			"fracture of skull":                                        "injuries to the head",
			"fracture of spine and trunk":                              "injuries to the abdomen, lower back, lumber spine, pelvis and external genitals",
			"intracranial injury excluding those with skull fractures": "injuries to the head",
			"internal injury of chest, abdoment and pelvis":            "injuries to the abdomen, lower back, lumber spine, pelvis and external genitals",
		},
	}
}

// LoadCurated reads a YAML override of the curated tables. A field left
// out of the file keeps its shipped default, so a file can replace the
// skip list alone or the manual map alone.
func LoadCurated(path string) (*Curated, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading curated file: %w", err)
	}

	var overlay Curated
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("parsing curated file %s: %w", path, err)
	}

	c := DefaultCurated()
	if overlay.SkipSubcategories != nil {
		c.SkipSubcategories = overlay.SkipSubcategories
	}
	if overlay.ManualSubcategories != nil {
		c.ManualSubcategories = overlay.ManualSubcategories
	}
	return c, nil
}
