package presenter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urolinq-questionnaire-engine/internal/domain"
)

func TestNoticeFor(t *testing.T) {
	tests := []struct {
		name      string
		result    *domain.Result
		wantLevel NoticeLevel
		wantTitle string
		wantLink  bool
	}{
		{
			name: "mipro high concern wins over semen analysis",
			result: &domain.Result{
				Questionnaire: domain.MIPRO,
				Flags:         domain.NewFlagSet(domain.FLAG_SUGGEST_SEMEN_ANALYSIS, domain.FLAG_HIGH_CONCERN),
			},
			wantLevel: NOTICE_WARNING,
			wantTitle: "Important Notice",
			wantLink:  true,
		},
		{
			name: "mipro semen analysis",
			result: &domain.Result{
				Questionnaire: domain.MIPRO,
				Flags:         domain.NewFlagSet(domain.FLAG_SUGGEST_SEMEN_ANALYSIS, domain.FLAG_LOW_CONCERN),
			},
			wantLevel: NOTICE_INFO,
			wantTitle: "Assessment Recommended",
		},
		{
			name:      "mipro without flags",
			result:    &domain.Result{Questionnaire: domain.MIPRO},
			wantLevel: NOTICE_SUCCESS,
			wantTitle: "Thank You!",
		},
		{
			name:      "ipss",
			result:    &domain.Result{Questionnaire: domain.IPSS, Score: 30},
			wantLevel: NOTICE_SUCCESS,
			wantTitle: "Questionnaire submitted successfully!",
		},
		{
			name:      "enuresis",
			result:    &domain.Result{Questionnaire: domain.ENURESIS, Score: 14},
			wantLevel: NOTICE_SUCCESS,
			wantTitle: "Thank You!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NoticeFor(tt.result)
			assert.Equal(t, tt.wantLevel, n.Level)
			assert.Equal(t, tt.wantTitle, n.Title)
			if tt.wantLink {
				require.NotNil(t, n.Action)
				assert.Equal(t, "Learn More", n.Action.Label)
				assert.Equal(t, ResourcesPath, n.Action.Target)
			} else {
				assert.Nil(t, n.Action)
			}
		})
	}
}

func TestIPSSSeverity(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{0, "mild"},
		{7, "mild"},
		{8, "moderate"},
		{19, "moderate"},
		{20, "severe"},
		{35, "severe"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IPSSSeverity(tt.score), "score %d", tt.score)
	}
}
