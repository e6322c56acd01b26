package fitapi

import (
	"encoding/json"
	"fmt"
	"time"
)

// Workout types accepted by the upstream API.
const (
	WorkoutStrength    = "strength"
	WorkoutCardio      = "cardio"
	WorkoutFlexibility = "flexibility"
	WorkoutSports      = "sports"
)

// Meal types accepted by the upstream API.
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealSnack     = "snack"
)

// Date is a calendar day. The upstream serializes series dates as plain
// YYYY-MM-DD while entity timestamps are full RFC 3339; Date accepts both.
type Date struct {
	time.Time
}

// NewDate creates a Date for the given calendar day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// UnmarshalJSON parses either a calendar day or a full timestamp.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	if t, err := time.Parse("2006-01-02", s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	d.Time = t.UTC().Truncate(24 * time.Hour)
	return nil
}

// MarshalJSON serializes the calendar day form.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format("2006-01-02"))
}

// Token is the upstream login response.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// User is the authenticated account with its optional body measurements.
// Weight is kilograms, height centimetres. Absent fields stay nil; zero and
// "not provided" are different states.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	FullName  *string   `json:"full_name"`
	Age       *int      `json:"age"`
	WeightKg  *float64  `json:"weight"`
	HeightCm  *float64  `json:"height"`
	Gender    *string   `json:"gender"`
	CreatedAt time.Time `json:"created_at"`
}

// RegisterRequest creates a new upstream account.
type RegisterRequest struct {
	Email    string  `json:"email"`
	Username string  `json:"username"`
	Password string  `json:"password"`
	FullName *string `json:"full_name,omitempty"`
}

// ProfileUpdate carries the editable profile fields. Nil leaves a field
// unchanged upstream.
type ProfileUpdate struct {
	FullName *string  `json:"full_name"`
	Age      *int     `json:"age"`
	WeightKg *float64 `json:"weight"`
	HeightCm *float64 `json:"height"`
	Gender   *string  `json:"gender"`
}

// Workout is a logged workout session. The wire field for duration is
// "duration"; the unit is minutes.
type Workout struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	Name            string    `json:"name"`
	WorkoutType     string    `json:"workout_type"`
	DurationMinutes *int      `json:"duration"`
	CaloriesBurned  *float64  `json:"calories_burned"`
	Notes           *string   `json:"notes"`
	LogDate         time.Time `json:"log_date"`
	CreatedAt       time.Time `json:"created_at"`
}

// WorkoutCreate is the create payload. Optional numerics are sent as explicit
// null when unset, never as zero.
type WorkoutCreate struct {
	Name            string    `json:"name"`
	WorkoutType     string    `json:"workout_type"`
	DurationMinutes *int      `json:"duration"`
	CaloriesBurned  *float64  `json:"calories_burned"`
	Notes           *string   `json:"notes"`
	LogDate         time.Time `json:"log_date"`
}

// NutritionLog is a logged meal entry. Macros are grams.
type NutritionLog struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	MealType    string    `json:"meal_type"`
	FoodName    string    `json:"food_name"`
	Calories    float64   `json:"calories"`
	Protein     *float64  `json:"protein"`
	Carbs       *float64  `json:"carbs"`
	Fats        *float64  `json:"fats"`
	ServingSize *string   `json:"serving_size"`
	LogDate     time.Time `json:"log_date"`
	CreatedAt   time.Time `json:"created_at"`
}

// NutritionLogCreate is the create payload.
type NutritionLogCreate struct {
	MealType    string    `json:"meal_type"`
	FoodName    string    `json:"food_name"`
	Calories    float64   `json:"calories"`
	Protein     *float64  `json:"protein"`
	Carbs       *float64  `json:"carbs"`
	Fats        *float64  `json:"fats"`
	ServingSize *string   `json:"serving_size"`
	LogDate     time.Time `json:"log_date"`
}

// DailySummary is the server-computed nutrition aggregate for one day.
type DailySummary struct {
	Date          Date    `json:"date"`
	TotalCalories float64 `json:"total_calories"`
	TotalProtein  float64 `json:"total_protein"`
	TotalCarbs    float64 `json:"total_carbs"`
	TotalFats     float64 `json:"total_fats"`
	MealCount     int     `json:"meal_count"`
}

// Progress is the 30-day analytics aggregate.
type Progress struct {
	PeriodDays int               `json:"period_days"`
	Workouts   WorkoutProgress   `json:"workouts"`
	Nutrition  NutritionProgress `json:"nutrition"`
}

// WorkoutProgress holds the workout side of the progress aggregate.
type WorkoutProgress struct {
	TotalCount       int            `json:"total_count"`
	DailyData        []WorkoutDay   `json:"daily_data"`
	TypeDistribution map[string]int `json:"type_distribution"`
}

// WorkoutDay is one day of aggregated workout measures. The server sums
// present values per day; a day with no recorded measure stays nil.
type WorkoutDay struct {
	Date           Date     `json:"date"`
	Duration       *float64 `json:"duration"`
	CaloriesBurned *float64 `json:"calories_burned"`
}

// NutritionProgress holds the nutrition side of the progress aggregate.
type NutritionProgress struct {
	DailyData []NutritionDay    `json:"daily_data"`
	Averages  NutritionAverages `json:"averages"`
}

// NutritionDay is one day of aggregated nutrition measures.
type NutritionDay struct {
	Date     Date     `json:"date"`
	Calories *float64 `json:"calories"`
	Protein  *float64 `json:"protein"`
	Carbs    *float64 `json:"carbs"`
	Fats     *float64 `json:"fats"`
}

// NutritionAverages are the period means the server reports alongside the
// daily series.
type NutritionAverages struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
}

// Statistics is the all-time account summary.
type Statistics struct {
	UserInfo       StatsUserInfo       `json:"user_info"`
	Totals         StatsTotals         `json:"totals"`
	RecentActivity StatsRecentActivity `json:"recent_activity"`
}

// StatsUserInfo identifies the account the statistics belong to.
type StatsUserInfo struct {
	Username    string `json:"username"`
	MemberSince *Date  `json:"member_since"`
}

// StatsTotals are lifetime entity counts.
type StatsTotals struct {
	Workouts      int `json:"workouts"`
	NutritionLogs int `json:"nutrition_logs"`
}

// StatsRecentActivity is the trailing-week activity summary.
type StatsRecentActivity struct {
	WorkoutsLast7Days int `json:"workouts_last_7_days"`
}

// Trend directions reported by the trends endpoint.
const (
	TrendIncreasing       = "increasing"
	TrendDecreasing       = "decreasing"
	TrendStable           = "stable"
	TrendInsufficientData = "insufficient_data"
	TrendNoData           = "no_data"
)

// Trends is the per-metric trend analysis.
type Trends struct {
	Metric string       `json:"metric"`
	Trend  string       `json:"trend"`
	Data   []TrendPoint `json:"data"`
}

// TrendPoint is one day of the trend series.
type TrendPoint struct {
	Date  Date    `json:"date"`
	Value float64 `json:"value"`
}

// PerformancePrediction is the ML performance forecast for one workout type.
type PerformancePrediction struct {
	WorkoutType        string         `json:"workout_type"`
	HistoricalWorkouts int            `json:"historical_workouts"`
	Predictions        []PredictedDay `json:"predictions"`
	ModelInfo          ModelInfo      `json:"model_info"`
}

// PredictedDay is one forecast step. Day is the offset ahead of the last
// recorded workout, starting at 1.
type PredictedDay struct {
	Day               int     `json:"day"`
	PredictedDuration float64 `json:"predicted_duration"`
	PredictedCalories float64 `json:"predicted_calories"`
}

// ModelInfo carries the model confidence scores as fractions in [0,1].
type ModelInfo struct {
	DurationScore float64 `json:"duration_score"`
	CaloriesScore float64 `json:"calories_score"`
}

// GoalRecommendations is the ML goal recommendation set.
type GoalRecommendations struct {
	PeriodAnalyzed  string           `json:"period_analyzed"`
	TotalWorkouts   int              `json:"total_workouts"`
	Recommendations []Recommendation `json:"recommendations"`
}

// Recommendation is one recommended goal.
type Recommendation struct {
	GoalType          string  `json:"goal_type"`
	CurrentAverage    float64 `json:"current_average"`
	RecommendedTarget float64 `json:"recommended_target"`
	Unit              string  `json:"unit"`
	Rationale         string  `json:"rationale"`
}

// Insight is one ML-derived observation. Data is opaque key/value display
// payload with no guaranteed shape.
type Insight struct {
	Type    string         `json:"type"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// NutritionEstimate is the predict-assist response for a food query.
// Any subset of fields may be absent.
type NutritionEstimate struct {
	Calories    *float64 `json:"calories"`
	Protein     *float64 `json:"protein"`
	Carbs       *float64 `json:"carbs"`
	Fats        *float64 `json:"fats"`
	ServingSize *string  `json:"serving_size"`
}

// WorkoutEstimate is the predict-assist response for an activity and duration.
type WorkoutEstimate struct {
	CaloriesBurned *float64 `json:"calories_burned"`
}
