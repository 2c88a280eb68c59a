package processor

import (
	"errors"

	"github.com/yungbote/catalogue-etl/internal/data/repos"
	"github.com/yungbote/catalogue-etl/internal/domain/catalogue"
	"github.com/yungbote/catalogue-etl/internal/platform/dbctx"
	"github.com/yungbote/catalogue-etl/internal/platform/logger"
)

type ResourceAction string

const (
	ResourceActionDataFile           ResourceAction = "data_file"
	ResourceActionSupportingDocument ResourceAction = "supporting_document"
	ResourceActionSkipped            ResourceAction = "skipped"
)

// ResourceOutcome is the result of persisting one online resource.
type ResourceOutcome struct {
	URL      string
	Function catalogue.ResourceFunction
	Action   ResourceAction
	Err      error
}

type PersistSummary struct {
	DataFiles           int
	SupportingDocuments int
	Skipped             int
	Failed              int
	Outcomes            []ResourceOutcome
}

// ResourcePersister stores online resources as data files or supporting
// documents according to their function.
type ResourcePersister struct {
	log *logger.Logger
}

func NewResourcePersister(baseLog *logger.Logger) *ResourcePersister {
	return &ResourcePersister{log: baseLog.With("component", "ResourcePersister")}
}

// Persist stores each resource in its own savepoint; one failure is recorded
// and the rest continue.
func (p *ResourcePersister) Persist(
	dbc dbctx.Context,
	set repos.Set,
	identifier string,
	datasetMetadataID int,
	resources []catalogue.OnlineResource,
) PersistSummary {
	var sum PersistSummary
	p.log.Debug("Persisting online resources", "identifier", identifier, "count", len(resources))

	for _, res := range resources {
		out := ResourceOutcome{URL: res.URL, Function: res.Function}
		err := dbc.Savepoint(func(sp dbctx.Context) error {
			action, err := p.persistOne(sp, set, identifier, datasetMetadataID, res)
			out.Action = action
			return err
		})
		out.Err = err
		switch {
		case err != nil:
			sum.Failed++
			p.log.Warn("Error persisting resource", "identifier", identifier, "url", res.URL, "error", err)
		case out.Action == ResourceActionDataFile:
			sum.DataFiles++
		case out.Action == ResourceActionSupportingDocument:
			sum.SupportingDocuments++
		default:
			sum.Skipped++
		}
		sum.Outcomes = append(sum.Outcomes, out)
	}
	return sum
}

var errEmptyResourceURL = errors.New("online resource has no url")

// persistOne maps one online resource to a data file or supporting document.
// A download, file-access or information resource with an empty URL is
// rejected with errEmptyResourceURL instead of being stored, since the
// download URL is the dedupe key. Browse and unknown functions are skipped.
func (p *ResourcePersister) persistOne(
	dbc dbctx.Context,
	set repos.Set,
	identifier string,
	datasetMetadataID int,
	res catalogue.OnlineResource,
) (ResourceAction, error) {
	switch res.Function {
	case catalogue.ResourceFunctionDownload, catalogue.ResourceFunctionFileAccess:
		if res.URL == "" {
			return ResourceActionDataFile, errEmptyResourceURL
		}
		fileType := catalogue.FileTypeZIP
		if res.Function == catalogue.ResourceFunctionFileAccess {
			fileType = catalogue.FileTypeWAF
		}
		return ResourceActionDataFile, set.DataFiles.Save(dbc, &catalogue.DataFile{
			DatasetMetadataID: datasetMetadataID,
			FileIdentifier:    identifier,
			Title:             res.Name,
			Description:       res.Description,
			Type:              res.Type,
			FileType:          fileType,
			DownloadURL:       res.URL,
		})
	case catalogue.ResourceFunctionInformation:
		if res.URL == "" {
			return ResourceActionSupportingDocument, errEmptyResourceURL
		}
		return ResourceActionSupportingDocument, set.SupportingDocuments.Save(dbc, &catalogue.SupportingDocument{
			DatasetMetadataID: datasetMetadataID,
			FileIdentifier:    identifier,
			Title:             res.Name,
			Description:       res.Description,
			Type:              res.Type,
			DocumentType:      catalogue.SupportingDocumentTypeZIP,
			DownloadURL:       res.URL,
		})
	case catalogue.ResourceFunctionBrowse:
		p.log.Info("Skipping browse resource", "identifier", identifier, "url", res.URL)
		return ResourceActionSkipped, nil
	default:
		p.log.Warn("Unknown resource function, skipping", "identifier", identifier, "function", res.Function.String(), "url", res.URL)
		return ResourceActionSkipped, nil
	}
}
