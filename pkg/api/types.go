package api

import (
	"encoding/json"
	"net/url"
	"strconv"
	"time"
)

// ResultFormat is the serialisation of query results.
type ResultFormat string

// Result formats accepted by the SQL endpoints.
const (
	FormatCSV     ResultFormat = "csv"
	FormatJSON    ResultFormat = "json"
	FormatPipe    ResultFormat = "pipe"
	FormatXML     ResultFormat = "xml"
	FormatExcel   ResultFormat = "excel"
	FormatParquet ResultFormat = "parquet"
	FormatSqlite  ResultFormat = "sqlite"
)

// ContentType returns the Accept header for the format.
func (f ResultFormat) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatPipe:
		return "text/plain"
	case FormatXML:
		return "application/xml"
	case FormatJSON:
		return "application/json"
	default:
		return "application/octet-stream"
	}
}

// QueryOptions are the optional parameters of a query execution.
type QueryOptions struct {
	// QueryName is shown in the query history.
	QueryName string
	// Timeout is sent as whole seconds; zero leaves the server default.
	Timeout time.Duration
	// ScalarParameters replace @@name placeholders in the query.
	ScalarParameters map[string]string
}

func (o *QueryOptions) values() (url.Values, error) {
	values := url.Values{}
	if o == nil {
		return values, nil
	}

	if o.QueryName != "" {
		values.Set("queryName", o.QueryName)
	}

	if o.Timeout > 0 {
		values.Set("timeoutSeconds", strconv.Itoa(int(o.Timeout.Seconds())))
	}

	if len(o.ScalarParameters) > 0 {
		encoded, err := json.Marshal(o.ScalarParameters)
		if err != nil {
			return nil, err
		}

		values.Set("scalarParameters", string(encoded))
	}

	return values, nil
}

// Link is a hypermedia link returned by the API.
type Link struct {
	Relation    string `json:"relation"              yaml:"relation"`
	Href        string `json:"href"                  yaml:"href"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Method      string `json:"method"                yaml:"method"`
}

// BackgroundQueryResponse is returned when a background query is started.
type BackgroundQueryResponse struct {
	ExecutionID string `json:"executionId"         yaml:"executionId"`
	Progress    *Link  `json:"progress,omitempty"  yaml:"progress,omitempty"`
	Cancel      *Link  `json:"cancel,omitempty"    yaml:"cancel,omitempty"`
	FetchJSON   *Link  `json:"fetchJson,omitempty" yaml:"fetchJson,omitempty"`
	FetchCSV    *Link  `json:"fetchCsv,omitempty"  yaml:"fetchCsv,omitempty"`
}

// TaskStatus is the execution status of a background query.
type TaskStatus string

// Task statuses.
const (
	TaskStatusCreated              TaskStatus = "Created"
	TaskStatusWaitingForActivation TaskStatus = "WaitingForActivation"
	TaskStatusWaitingToRun         TaskStatus = "WaitingToRun"
	TaskStatusRunning              TaskStatus = "Running"
	TaskStatusRanToCompletion      TaskStatus = "RanToCompletion"
	TaskStatusFaulted              TaskStatus = "Faulted"
	TaskStatusCanceled             TaskStatus = "Canceled"
)

// IsFinal reports whether the query has stopped running.
func (s TaskStatus) IsFinal() bool {
	return s == TaskStatusRanToCompletion || s == TaskStatusFaulted || s == TaskStatusCanceled
}

// Column describes a result column.
type Column struct {
	Name     string `json:"name"     yaml:"name"`
	DataType string `json:"dataType" yaml:"dataType"`
}

// FeedbackEvent is a progress message emitted while a query runs.
type FeedbackEvent struct {
	When    time.Time `json:"when"    yaml:"when"`
	Level   string    `json:"level"   yaml:"level"`
	Message string    `json:"message" yaml:"message"`
}

// BackgroundQueryProgressResponse describes the progress of a background query.
type BackgroundQueryProgressResponse struct {
	HasData          bool            `json:"hasData"                    yaml:"hasData"`
	RowCount         int             `json:"rowCount"                   yaml:"rowCount"`
	Status           TaskStatus      `json:"status"                     yaml:"status"`
	State            string          `json:"state"                      yaml:"state"`
	Progress         string          `json:"progress"                   yaml:"progress"`
	Query            string          `json:"query,omitempty"            yaml:"query,omitempty"`
	QueryName        string          `json:"queryName,omitempty"        yaml:"queryName,omitempty"`
	Feedback         []FeedbackEvent `json:"feedback,omitempty"         yaml:"feedback,omitempty"`
	ColumnsAvailable []Column        `json:"columnsAvailable,omitempty" yaml:"columnsAvailable,omitempty"`
}

// BackgroundQueryCancelResponse is returned when a background query is cancelled.
type BackgroundQueryCancelResponse struct {
	HadData        bool       `json:"hadData"        yaml:"hadData"`
	PreviousStatus TaskStatus `json:"previousStatus" yaml:"previousStatus"`
	PreviousState  string     `json:"previousState"  yaml:"previousState"`
	Progress       string     `json:"progress"       yaml:"progress"`
}

// HistoryOptions filter the query history.
type HistoryOptions struct {
	StartAt        time.Time
	EndAt          time.Time
	FreeTextSearch string
	ShowAll        bool
}

func (o *HistoryOptions) values() url.Values {
	values := url.Values{}
	if o == nil {
		return values
	}

	if !o.StartAt.IsZero() {
		values.Set("startAt", o.StartAt.UTC().Format(time.RFC3339))
	}

	if !o.EndAt.IsZero() {
		values.Set("endAt", o.EndAt.UTC().Format(time.RFC3339))
	}

	if o.FreeTextSearch != "" {
		values.Set("freeTextSearch", o.FreeTextSearch)
	}

	if o.ShowAll {
		values.Set("showAll", "true")
	}

	return values
}
