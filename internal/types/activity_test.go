package types

import (
	"encoding/json"
	"testing"
	"time"
)

func TestSuitabilityLevel_Order(t *testing.T) {
	if !(LevelExcluded < LevelAcceptable && LevelAcceptable < LevelIndoor && LevelIndoor < LevelGood && LevelGood < LevelPerfect) {
		t.Fatal("suitability levels are not declared in suitability order")
	}
}

func TestSuitabilityLevel_SelectionRank(t *testing.T) {
	if LevelPerfect.SelectionRank() <= LevelGood.SelectionRank() {
		t.Error("perfect must outrank good")
	}
	if LevelGood.SelectionRank() != LevelAcceptable.SelectionRank() {
		t.Error("good and acceptable rank equally")
	}
	if LevelAcceptable.SelectionRank() <= LevelIndoorAlternative.SelectionRank() {
		t.Error("acceptable must outrank indoorAlternative")
	}
	if LevelIndoorAlternative.SelectionRank() <= LevelIndoor.SelectionRank() {
		t.Error("indoorAlternative must outrank indoor")
	}
}

func TestSuitabilityLevel_JSON(t *testing.T) {
	b, err := json.Marshal(LevelIndoorAlternative)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"indoorAlternative"` {
		t.Errorf("marshal = %s", b)
	}

	var l SuitabilityLevel
	if err := json.Unmarshal([]byte(`"perfect"`), &l); err != nil {
		t.Fatal(err)
	}
	if l != LevelPerfect {
		t.Errorf("unmarshal = %v", l)
	}
	if err := json.Unmarshal([]byte(`"splendid"`), &l); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestActivityDefinition_InSeason(t *testing.T) {
	summer := ActivityDefinition{ID: "swimming", SeasonalMonths: []int{6, 7, 8}}
	if summer.InSeason(time.January) {
		t.Error("swimming should be out of season in January")
	}
	if !summer.InSeason(time.July) {
		t.Error("swimming should be in season in July")
	}

	always := ActivityDefinition{ID: "museum"}
	if !always.InSeason(time.February) {
		t.Error("activities without seasonal months are always in season")
	}
}

func TestActivityDefinition_HasTag(t *testing.T) {
	a := ActivityDefinition{Tags: []string{"Evening", "social"}}
	if !a.HasTag("evening") {
		t.Error("tag match should be case-insensitive")
	}
	if a.HasTag("family") {
		t.Error("unexpected tag match")
	}
}
