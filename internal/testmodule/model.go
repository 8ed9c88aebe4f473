package testmodule

import "github.com/schemagen-labs/schemagen/pkg/schema"

// BlogModel returns the model produced by BlogContext.
func BlogModel() *schema.Model {
	return &schema.Model{
		Tables: []schema.Table{
			{
				Name:   "Authors",
				GoType: "Author",
				Columns: []schema.Column{
					{Name: "Id", Type: "integer", ValueGenerated: "OnAdd"},
					{Name: "Name", Type: "character varying(200)"},
				},
				PrimaryKey:    &schema.Key{Name: "PK_Authors", Columns: []string{"Id"}},
				Relationships: []schema.Relationship{{Name: "Posts", Target: "Posts", Collection: true}},
			},
			{
				Name:   "Blogs",
				GoType: "Blog",
				Columns: []schema.Column{
					{Name: "Id", Type: "integer", ValueGenerated: "OnAdd"},
					{Name: "Url", Type: "text"},
					{Name: "Rating", Type: "integer", Default: "0"},
				},
				PrimaryKey: &schema.Key{Name: "PK_Blogs", Columns: []string{"Id"}},
				Indexes: []schema.Index{
					{Name: "IX_Blogs_Url", Columns: []string{"Url"}, Unique: true, Filter: `"Url" IS NOT NULL`},
				},
				Relationships: []schema.Relationship{{Name: "Posts", Target: "Posts", Collection: true}},
			},
			{
				Name:   "Posts",
				GoType: "Post",
				Columns: []schema.Column{
					{Name: "Id", Type: "integer", ValueGenerated: "OnAdd"},
					{Name: "Title", Type: "character varying(200)"},
					{Name: "Content", Type: "text", Nullable: true},
					{Name: "BlogId", Type: "integer"},
					{Name: "AuthorId", Type: "integer", Nullable: true},
				},
				PrimaryKey: &schema.Key{Name: "PK_Posts", Columns: []string{"Id"}},
				ForeignKeys: []schema.ForeignKey{
					{
						Name:             "FK_Posts_Blogs_BlogId",
						Columns:          []string{"BlogId"},
						PrincipalTable:   "Blogs",
						PrincipalColumns: []string{"Id"},
						OnDelete:         schema.DeleteCascade,
						Required:         true,
						Navigation:       "Blog",
					},
					{
						Name:             "FK_Posts_Authors_AuthorId",
						Columns:          []string{"AuthorId"},
						PrincipalTable:   "Authors",
						PrincipalColumns: []string{"Id"},
						OnDelete:         schema.DeleteSetNull,
					},
				},
				Indexes: []schema.Index{
					{Name: "IX_Posts_BlogId", Columns: []string{"BlogId"}},
					{Name: "IX_Posts_AuthorId", Columns: []string{"AuthorId"}},
				},
				Relationships: []schema.Relationship{
					{Name: "Blog", Target: "Blogs"},
					{Name: "Author", Target: "Authors"},
				},
			},
		},
	}
}
