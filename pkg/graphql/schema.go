package graphql

import (
	"context"
	"fmt"

	"github.com/dd0wney/ppinet/pkg/algorithms"
	"github.com/dd0wney/ppinet/pkg/interactions"
	"github.com/dd0wney/ppinet/pkg/pipeline"
	"github.com/graphql-go/graphql"
	"github.com/mitchellh/mapstructure"
)

// analyzeArgs are the arguments of the analyze query
type analyzeArgs struct {
	ProteinID string `mapstructure:"proteinId"`
	Source    string `mapstructure:"source"`
	Layout    string `mapstructure:"layout"`
	Metric    string `mapstructure:"metric"`
}

// topNodesArgs are the arguments of Analysis.topNodes
type topNodesArgs struct {
	Metric string `mapstructure:"metric"`
}

// proteinScores is the resolved value of a Protein object
type proteinScores struct {
	ID         string
	Degree     int
	Scores     map[algorithms.Metric]float64
	Clustering float64
}

// GenerateSchema builds the query schema over analyzer. Result list sizes
// are bounded by limits; nil selects DefaultLimitConfig.
func GenerateSchema(analyzer *pipeline.Analyzer, limits *LimitConfig) (graphql.Schema, error) {
	if limits == nil {
		limits = DefaultLimitConfig()
	}
	if err := limits.Validate(); err != nil {
		return graphql.Schema{}, err
	}

	sourceEnum := createSourceEnum()
	analysisType := createAnalysisType(sourceEnum, limits)

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"health": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return "ok", nil
				},
			},
			"sources": &graphql.Field{
				Type:        graphql.NewList(graphql.String),
				Description: "Interaction databases that can be queried",
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return interactions.SourceNames(), nil
				},
			},
			"metrics": &graphql.Field{
				Type:        graphql.NewList(graphql.String),
				Description: "Centrality metrics computed by analyze",
				Resolve: func(p graphql.ResolveParams) (any, error) {
					names := make([]string, len(algorithms.AllMetrics))
					for i, m := range algorithms.AllMetrics {
						names[i] = string(m)
					}
					return names, nil
				},
			},
			"analyze": &graphql.Field{
				Type:        analysisType,
				Description: "Fetch the interaction network of a protein and compute its centralities",
				Args: graphql.FieldConfigArgument{
					"proteinId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"source":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"layout":    &graphql.ArgumentConfig{Type: graphql.String},
					"metric":    &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: createAnalyzeResolver(analyzer),
			},
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("failed to create schema: %w", err)
	}
	return schema, nil
}

func createSourceEnum() *graphql.Enum {
	values := graphql.EnumValueConfigMap{}
	for _, s := range interactions.AllSources {
		values[s.String()] = &graphql.EnumValueConfig{Value: s.String()}
	}
	return graphql.NewEnum(graphql.EnumConfig{
		Name:   "Source",
		Values: values,
	})
}

func createProteinType() *graphql.Object {
	score := func(metric algorithms.Metric) *graphql.Field {
		return &graphql.Field{
			Type:        graphql.Float,
			Description: fmt.Sprintf("%s, null when the metric failed", metric),
			Resolve: func(p graphql.ResolveParams) (any, error) {
				ps, ok := p.Source.(proteinScores)
				if !ok {
					return nil, nil
				}
				if v, ok := ps.Scores[metric]; ok {
					return v, nil
				}
				return nil, nil
			},
		}
	}

	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Protein",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(proteinScores).ID, nil
				},
			},
			"degree": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(proteinScores).Degree, nil
				},
			},
			"clustering": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(proteinScores).Clustering, nil
				},
			},
			"degreeCentrality":      score(algorithms.MetricDegree),
			"betweennessCentrality": score(algorithms.MetricBetweenness),
			"closenessCentrality":   score(algorithms.MetricCloseness),
			"eigenvectorCentrality": score(algorithms.MetricEigenvector),
			"pageRank":              score(algorithms.MetricPageRank),
		},
	})
}

func createAnalysisType(sourceEnum *graphql.Enum, limits *LimitConfig) *graphql.Object {
	interactionType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Interaction",
		Fields: graphql.Fields{
			"proteinA": &graphql.Field{Type: graphql.String},
			"proteinB": &graphql.Field{Type: graphql.String},
		},
	})

	metricErrorType := graphql.NewObject(graphql.ObjectConfig{
		Name: "MetricError",
		Fields: graphql.Fields{
			"metric":  &graphql.Field{Type: graphql.String},
			"message": &graphql.Field{Type: graphql.String},
		},
	})

	rankedType := graphql.NewObject(graphql.ObjectConfig{
		Name: "RankedProtein",
		Fields: graphql.Fields{
			"protein": &graphql.Field{Type: graphql.String},
			"score":   &graphql.Field{Type: graphql.Float},
		},
	})

	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Analysis",
		Fields: graphql.Fields{
			"runId":     reportField(graphql.String, func(r *pipeline.Report) any { return r.RunID }),
			"proteinId": reportField(graphql.String, func(r *pipeline.Report) any { return r.ProteinID }),
			"source":    reportField(sourceEnum, func(r *pipeline.Report) any { return r.Source.String() }),
			"nodeCount": reportField(graphql.Int, func(r *pipeline.Report) any { return r.Statistics.NodeCount }),
			"edgeCount": reportField(graphql.Int, func(r *pipeline.Report) any { return r.Statistics.EdgeCount }),
			"componentCount": reportField(graphql.Int, func(r *pipeline.Report) any {
				return r.Statistics.ComponentCount
			}),
			"primaryMetric": reportField(graphql.String, func(r *pipeline.Report) any {
				return string(r.PrimaryMetric)
			}),
			"triangles": reportField(graphql.Int, func(r *pipeline.Report) any { return r.Triangles }),
			"averageClustering": reportField(graphql.Float, func(r *pipeline.Report) any {
				return r.AverageClustering
			}),
			"interactions": &graphql.Field{
				Type: graphql.NewList(interactionType),
				Args: graphql.FieldConfigArgument{
					"limit": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					r := p.Source.(*pipeline.Report)
					limit := limits.Resolve(p.Args)
					out := make([]map[string]any, 0, min(limit, len(r.Interactions)))
					for _, e := range r.Interactions {
						if len(out) >= limit {
							break
						}
						out = append(out, map[string]any{"proteinA": e.A, "proteinB": e.B})
					}
					return out, nil
				},
			},
			"nodes": &graphql.Field{
				Type:    graphql.NewList(createProteinType()),
				Resolve: resolveProteins,
			},
			"metricErrors": &graphql.Field{
				Type: graphql.NewList(metricErrorType),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					r := p.Source.(*pipeline.Report)
					out := make([]map[string]any, 0, len(r.MetricErrors))
					for _, m := range algorithms.AllMetrics {
						if msg, ok := r.MetricErrors[string(m)]; ok {
							out = append(out, map[string]any{"metric": string(m), "message": msg})
						}
					}
					return out, nil
				},
			},
			"topNodes": &graphql.Field{
				Type: graphql.NewList(rankedType),
				Args: graphql.FieldConfigArgument{
					"metric": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"limit":  &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					var args topNodesArgs
					if err := mapstructure.Decode(p.Args, &args); err != nil {
						return nil, fmt.Errorf("invalid arguments: %w", err)
					}
					metric, err := algorithms.ParseMetric(args.Metric)
					if err != nil {
						return nil, err
					}
					r := p.Source.(*pipeline.Report)
					if r.Result == nil || !r.Result.Succeeded(metric) {
						return nil, fmt.Errorf("%s is not available: %s", metric, r.MetricErrors[string(metric)])
					}
					ranked := r.Result.Top(metric, limits.Resolve(p.Args))
					out := make([]map[string]any, len(ranked))
					for i, rn := range ranked {
						out[i] = map[string]any{"protein": rn.Node, "score": rn.Score}
					}
					return out, nil
				},
			},
		},
	})
}

func reportField(t graphql.Output, get func(*pipeline.Report) any) *graphql.Field {
	return &graphql.Field{
		Type: t,
		Resolve: func(p graphql.ResolveParams) (any, error) {
			r, ok := p.Source.(*pipeline.Report)
			if !ok {
				return nil, nil
			}
			return get(r), nil
		},
	}
}

func resolveProteins(p graphql.ResolveParams) (any, error) {
	r := p.Source.(*pipeline.Report)
	if r.Graph == nil || r.Result == nil {
		return []proteinScores{}, nil
	}

	nodes := r.Graph.Nodes()
	out := make([]proteinScores, len(nodes))
	for i, id := range nodes {
		ps := proteinScores{
			ID:         id,
			Degree:     r.Graph.Degree(id),
			Scores:     make(map[algorithms.Metric]float64, len(algorithms.AllMetrics)),
			Clustering: r.Clustering[id],
		}
		for _, m := range algorithms.AllMetrics {
			if v, ok := r.Result.Score(m, id); ok {
				ps.Scores[m] = v
			}
		}
		out[i] = ps
	}
	return out, nil
}

func createAnalyzeResolver(analyzer *pipeline.Analyzer) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		var args analyzeArgs
		if err := mapstructure.Decode(p.Args, &args); err != nil {
			return nil, fmt.Errorf("invalid arguments: %w", err)
		}
		ctx := p.Context
		if ctx == nil {
			ctx = context.Background()
		}
		return analyzer.Analyze(ctx, pipeline.Request{
			ProteinID: args.ProteinID,
			Source:    args.Source,
			Layout:    args.Layout,
			Metric:    args.Metric,
		})
	}
}
